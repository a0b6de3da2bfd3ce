package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Username and password required.")
		return
	}

	var existing models.User
	err := db.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		fail(c, http.StatusConflict, "Username already exists.")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusInternalServerError, "Signup failed.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Signup failed.")
		return
	}

	user := models.User{Username: req.Username, Password: string(hash)}
	if err := db.DB.Create(&user).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Signup failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Signup successful!"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var user models.User
	if err := db.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		fail(c, http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		fail(c, http.StatusInternalServerError, "Login failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	}})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1})
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, http.StatusUnauthorized, "Not logged in.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	}})
}
