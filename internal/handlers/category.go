package handlers

import (
	"net/http"
	"strings"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/logger"
	"github.com/hiroshinaka/Threadly/internal/models"
	"github.com/hiroshinaka/Threadly/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TextAllow   *bool  `json:"text_allow"`
	PhotoAllow  *bool  `json:"photo_allow"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		fail(c, http.StatusBadRequest, "Name required.")
		return
	}

	slug, err := utils.UniqueSlug(db.DB, "categories", "slug", req.Name)
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        slug,
		AdminID:     user.ID,
		Description: req.Description,
		TextAllow:   req.TextAllow == nil || *req.TextAllow,
		PhotoAllow:  req.PhotoAllow == nil || *req.PhotoAllow,
	}
	if err := db.DB.Create(&category).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	// Auto-subscribe the creator. Best effort: a failure here must never
	// undo the category that was just created.
	sub := models.Subscription{UserID: user.ID, CategoryID: category.ID}
	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
		logger.Warn("auto-subscribe after category create failed",
			logger.Uint("user_id", user.ID),
			logger.Uint("category_id", category.ID),
			logger.Err(err))
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "category": category})
}

func (h *CategoryHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var categories []models.Category
	q := db.DB.Order("name ASC").Limit(50)
	if query != "" {
		q = q.Where("name ILIKE ?", "%"+query+"%")
	}
	if err := q.Find(&categories).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "categories": categories})
}

func (h *CategoryHandler) Subscribe(c *gin.Context) {
	user := currentUser(c)
	categoryID := utils.StringToUint(c.Param("categoryId"))

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	sub := models.Subscription{UserID: user.ID, CategoryID: category.ID}
	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "subscribed": true})
}

func (h *CategoryHandler) Unsubscribe(c *gin.Context) {
	user := currentUser(c)
	categoryID := utils.StringToUint(c.Param("categoryId"))

	if err := db.DB.Where("user_id = ? AND category_id = ?", user.ID, categoryID).
		Delete(&models.Subscription{}).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "subscribed": false})
}

func (h *CategoryHandler) ListSubscriptions(c *gin.Context) {
	user := currentUser(c)

	var subs []models.Subscription
	if err := db.DB.Preload("Category").
		Where("user_id = ?", user.ID).
		Find(&subs).Error; err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "subscriptions": subs})
}
