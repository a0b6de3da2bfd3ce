package handlers

import (
	"github.com/hiroshinaka/Threadly/internal/middleware"
	"github.com/hiroshinaka/Threadly/internal/models"

	"github.com/gin-gonic/gin"
)

// fail writes the API's error envelope.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": false, "message": message})
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}
