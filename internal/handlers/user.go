package handlers

import (
	"net/http"
	"time"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"
	"github.com/hiroshinaka/Threadly/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Overview returns a user's threads, comments, and contribution counts for
// the profile page.
func (h *UserHandler) Overview(c *gin.Context) {
	userID := utils.StringToUint(c.Param("userId"))

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	var threads []models.Thread
	if err := db.DB.Preload("Category").
		Where("author_id = ?", user.ID).
		Order("created_at DESC").
		Limit(200).
		Find(&threads).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}
	fillCommentCounts(threads)

	threadList := make([]gin.H, len(threads))
	for i, t := range threads {
		threadList[i] = threadSummary(t)
	}

	type profileComment struct {
		ID          uint   `json:"comment_id"`
		Text        string `json:"-"`
		ParentID    *uint  `json:"parent_id"`
		ThreadID    uint   `json:"thread_id"`
		ThreadTitle string    `json:"thread_title"`
		CreatedAt   time.Time `json:"created_at"`
	}
	var comments []profileComment
	if err := db.DB.Table("comment AS c").
		Select("c.comment_id AS id, c.text, c.parent_id, c.thread_id, t.title AS thread_title, c.created_at").
		Joins("LEFT JOIN thread t ON t.thread_id = c.thread_id").
		Where("c.author_id = ?", user.ID).
		Order("c.created_at DESC").
		Limit(200).
		Scan(&comments).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	commentList := make([]gin.H, len(comments))
	for i, cm := range comments {
		commentList[i] = gin.H{
			"comment_id":   cm.ID,
			"text":         models.ParseCommentContent(cm.Text),
			"parent_id":    cm.ParentID,
			"thread_id":    cm.ThreadID,
			"thread_title": cm.ThreadTitle,
			"created_at":   cm.CreatedAt,
		}
	}

	var threadCount, commentCount int64
	db.DB.Model(&models.Thread{}).Where("author_id = ?", user.ID).Count(&threadCount)
	db.DB.Model(&models.Comment{}).Where("author_id = ?", user.ID).Count(&commentCount)

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
		"threads":  threadList,
		"comments": commentList,
		"counts": gin.H{
			"post_count":    threadCount,
			"comment_count": commentCount,
		},
	})
}
