package main

import (
	"log"
	"net/http"
	"os"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/handlers"
	"github.com/hiroshinaka/Threadly/internal/logger"
	"github.com/hiroshinaka/Threadly/internal/middleware"
	"github.com/hiroshinaka/Threadly/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	logger.Init()
	defer logger.Sync()

	db.Init()

	isProd := os.Getenv("ENV") == "production"
	if isProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS: allow the SPA origin with credentials so the session cookie
	// travels cross-site.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin, "http://localhost:3000"}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:5000"}
	}
	r.Use(cors.New(corsConfig))

	// Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	sameSite := http.SameSiteLaxMode
	if isProd {
		// Cross-site cookie for a separately hosted SPA
		sameSite = http.SameSiteNoneMode
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		Secure:   isProd,
		SameSite: sameSite,
	})
	r.Use(sessions.Sessions(handlers.SessionCookieName, store))

	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	logger.Info("Threadly server starting", logger.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited", logger.Err(err))
	}
}
