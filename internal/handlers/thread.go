package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"
	"github.com/hiroshinaka/Threadly/internal/services"
	"github.com/hiroshinaka/Threadly/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const frontPageCacheKey = "threads:front"

type ThreadHandler struct{}

func NewThreadHandler() *ThreadHandler {
	return &ThreadHandler{}
}

// fillCommentCounts batch-fills comment counts for a page of threads.
func fillCommentCounts(threads []models.Thread) {
	if len(threads) == 0 {
		return
	}

	threadIDs := make([]uint, len(threads))
	for i, t := range threads {
		threadIDs[i] = t.ID
	}

	type countResult struct {
		ThreadID uint
		Count    int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("thread_id, COUNT(*) as count").
		Where("thread_id IN ?", threadIDs).
		Group("thread_id").
		Scan(&results)

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.ThreadID] = r.Count
	}

	for i := range threads {
		threads[i].CommentCount = countMap[threads[i].ID]
	}
}

func threadSummary(t models.Thread) gin.H {
	return gin.H{
		"thread_id":     t.ID,
		"thread_slug":   t.Slug,
		"title":         t.Title,
		"body_text":     t.BodyText,
		"karma":         t.Karma,
		"view_count":    t.ViewCount,
		"is_active":     t.IsActive,
		"created_at":    t.CreatedAt,
		"category_id":   t.CategoryID,
		"category_name": t.Category.Name,
		"category_slug": t.Category.Slug,
		"author_id":     t.AuthorID,
		"author":        t.Author.Username,
		"comment_count": t.CommentCount,
		"media":         t.Media,
	}
}

// List serves the front page: recent active threads with author, category,
// media, and comment counts.
func (h *ThreadHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(frontPageCacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var threads []models.Thread
	if err := db.DB.Preload("Author").Preload("Category").Preload("Media").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(50).
		Find(&threads).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	fillCommentCounts(threads)

	list := make([]gin.H, len(threads))
	for i, t := range threads {
		list[i] = threadSummary(t)
	}

	data := gin.H{"ok": true, "threads": list}
	utils.GetCache().Set(frontPageCacheKey, data, 1*time.Minute)
	c.JSON(http.StatusOK, data)
}

type createThreadRequest struct {
	Title      string `json:"title"`
	BodyText   string `json:"body_text"`
	CategoryID uint   `json:"category_id"`
	Media      []struct {
		MediaType string `json:"media_type"`
		URL       string `json:"url"`
		PublicID  string `json:"public_id"`
	} `json:"media"`
}

func (h *ThreadHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" {
		fail(c, http.StatusBadRequest, "Title required.")
		return
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		fail(c, http.StatusBadRequest, "Category not found.")
		return
	}
	if req.BodyText != "" && !category.TextAllow {
		fail(c, http.StatusBadRequest, "Category does not allow text threads.")
		return
	}
	if len(req.Media) > 0 && !category.PhotoAllow {
		fail(c, http.StatusBadRequest, "Category does not allow image threads.")
		return
	}

	slug, err := utils.UniqueSlug(db.DB, "thread", "slug", req.Title)
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	thread := models.Thread{
		Title:      req.Title,
		Slug:       slug,
		BodyText:   req.BodyText,
		AuthorID:   user.ID,
		CategoryID: category.ID,
		IsActive:   true,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}
		for _, m := range req.Media {
			mediaType := m.MediaType
			if mediaType == "" {
				mediaType = "image"
			}
			media := models.ThreadMedia{
				ThreadID:  thread.ID,
				MediaType: mediaType,
				URL:       m.URL,
				PublicID:  m.PublicID,
			}
			if err := tx.Create(&media).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	utils.GetCache().Delete(frontPageCacheKey)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "thread_id": thread.ID, "slug": thread.Slug})
}

// Detail returns a thread plus its nested comment tree, annotated with the
// viewer's own votes when logged in.
func (h *ThreadHandler) Detail(c *gin.Context) {
	threadID := utils.StringToUint(c.Param("threadId"))

	var thread models.Thread
	err := db.DB.Preload("Author").Preload("Category").Preload("Media").
		First(&thread, threadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusNotFound, "Thread not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	viewerID := uint(0)
	if user := currentUser(c); user != nil {
		viewerID = user.ID
	}

	userVote := 0
	if viewerID != 0 {
		var reaction models.ThreadReaction
		if err := db.DB.Where("user_id = ? AND thread_id = ?", viewerID, thread.ID).
			First(&reaction).Error; err == nil {
			userVote = reaction.Value
		}
	}

	comments, err := services.BuildCommentTree(thread.ID, viewerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	detail := threadSummary(thread)
	detail["user_vote"] = userVote
	detail["body_html"] = utils.RenderMarkdown(thread.BodyText)

	c.JSON(http.StatusOK, gin.H{"ok": true, "thread": detail, "comments": comments})
}

// Delete hard-deletes a thread and everything referencing it. Only the
// author or an admin may do this.
func (h *ThreadHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	threadID := utils.StringToUint(c.Param("threadId"))

	var thread models.Thread
	err := db.DB.First(&thread, threadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusNotFound, "Thread not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	if thread.AuthorID != user.ID && !user.IsAdmin() {
		fail(c, http.StatusForbidden, "Not allowed.")
		return
	}

	if err := services.DeleteThread(thread.ID); err != nil {
		fail(c, http.StatusInternalServerError, "Delete failed")
		return
	}

	utils.GetCache().Delete(frontPageCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true, "thread_id": thread.ID})
}
