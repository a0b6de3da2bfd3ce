package db

import (
	"os"

	"github.com/hiroshinaka/Threadly/internal/logger"
	"github.com/hiroshinaka/Threadly/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=threadly port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", logger.Err(err))
	}

	logger.Info("database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subscription{},
		&models.Thread{},
		&models.ThreadMedia{},
		&models.Comment{},
		&models.ThreadReaction{},
		&models.CommentReaction{},
		&models.ViewEvent{},
	)
	if err != nil {
		logger.Fatal("failed to migrate database", logger.Err(err))
	}
	logger.Info("database migration completed")

	seedCategories()
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "General", Slug: "general", Description: "General discussion"},
		{Name: "Tech", Slug: "tech", Description: "Technology news and questions"},
		{Name: "Pictures", Slug: "pictures", Description: "Image threads"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Warn("failed to seed category",
				logger.String("name", category.Name), logger.Err(err))
		}
	}
	logger.Info("initial categories created")
}
