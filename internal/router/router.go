package router

import (
	"net/http"
	"time"

	"github.com/hiroshinaka/Threadly/internal/handlers"
	"github.com/hiroshinaka/Threadly/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	authHandler := handlers.NewAuthHandler()
	threadHandler := handlers.NewThreadHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	viewHandler := handlers.NewViewHandler()
	categoryHandler := handlers.NewCategoryHandler()
	userHandler := handlers.NewUserHandler()

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "now": time.Now().UTC().Format(time.RFC3339)})
	})

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	api.GET("/threads", threadHandler.List)
	api.GET("/threads/:threadId", threadHandler.Detail)
	api.POST("/threads/:threadId/view", viewHandler.Record)
	api.GET("/categories/search", categoryHandler.Search)
	api.GET("/users/:userId/overview", userHandler.Overview)

	// Protected routes
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)

		authorized.POST("/threads", threadHandler.Create)
		authorized.DELETE("/threads/:threadId", threadHandler.Delete)
		authorized.POST("/threads/:threadId/comments", commentHandler.Create)
		authorized.POST("/threads/:threadId/vote", voteHandler.VoteThread)

		authorized.POST("/comments/:commentId/vote", voteHandler.VoteComment)
		authorized.DELETE("/comments/:commentId", commentHandler.SoftDelete)
		authorized.DELETE("/comments/:commentId/tree", commentHandler.DeleteTree)

		authorized.POST("/categories", categoryHandler.Create)
		authorized.POST("/categories/:categoryId/subscribe", categoryHandler.Subscribe)
		authorized.DELETE("/categories/:categoryId/subscribe", categoryHandler.Unsubscribe)
		authorized.GET("/subscriptions", categoryHandler.ListSubscriptions)
	}
}
