package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"
	"github.com/hiroshinaka/Threadly/internal/services"
	"github.com/hiroshinaka/Threadly/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type createCommentRequest struct {
	Text     string `json:"text"`
	ParentID *uint  `json:"parent_id"`
}

// Create adds a comment or reply to a thread. A reply's parent must be an
// existing comment in the same thread.
func (h *CommentHandler) Create(c *gin.Context) {
	user := currentUser(c)
	threadID := utils.StringToUint(c.Param("threadId"))

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		fail(c, http.StatusBadRequest, "text required")
		return
	}

	var thread models.Thread
	if err := db.DB.Select("thread_id").First(&thread, threadID).Error; err != nil {
		fail(c, http.StatusNotFound, "Thread not found")
		return
	}

	if req.ParentID != nil {
		var parent models.Comment
		err := db.DB.Select("comment_id", "thread_id").First(&parent, *req.ParentID).Error
		if err != nil || parent.ThreadID != thread.ID {
			fail(c, http.StatusBadRequest, "parent_id must reference a comment in the same thread")
			return
		}
	}

	comment := models.Comment{
		Text:     req.Text,
		ParentID: req.ParentID,
		ThreadID: thread.ID,
		AuthorID: user.ID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "comment_id": comment.ID})
}

// loadCommentForModeration fetches the comment and checks that the caller
// is its author, the thread's author, or an admin.
func loadCommentForModeration(c *gin.Context, user *models.User) (*models.Comment, bool) {
	commentID := utils.StringToUint(c.Param("commentId"))

	var comment models.Comment
	err := db.DB.First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusNotFound, "Comment not found")
		return nil, false
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return nil, false
	}

	if comment.AuthorID != user.ID && !user.IsAdmin() {
		var thread models.Thread
		if err := db.DB.Select("thread_id", "author_id").
			First(&thread, comment.ThreadID).Error; err != nil || thread.AuthorID != user.ID {
			fail(c, http.StatusForbidden, "Not allowed.")
			return nil, false
		}
	}
	return &comment, true
}

type softDeleteRequest struct {
	Reason string `json:"reason"`
}

// SoftDelete replaces the comment's text with a removal marker, keeping the
// row and its replies threaded in place.
func (h *CommentHandler) SoftDelete(c *gin.Context) {
	user := currentUser(c)
	comment, ok := loadCommentForModeration(c, user)
	if !ok {
		return
	}

	var req softDeleteRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	if err := services.SoftDeleteComment(comment.ID, user.ID, req.Reason); err != nil {
		fail(c, http.StatusInternalServerError, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "comment_id": comment.ID})
}

// DeleteTree hard-deletes a comment and every descendant reply.
func (h *CommentHandler) DeleteTree(c *gin.Context) {
	user := currentUser(c)
	comment, ok := loadCommentForModeration(c, user)
	if !ok {
		return
	}

	deleted, err := services.DeleteCommentSubtree(comment.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "comment_id": comment.ID, "deleted": deleted})
}
