package config

import (
	"fmt"
	"os"

	"github.com/billysm23/FitKitchen-BackendTST/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		L().Warn("No .env file found, using system env")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		L().Fatal("Failed to connect to database", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.HealthAssessment{},
		&models.MenuCategory{},
		&models.Ingredient{},
		&models.Menu{},
		&models.MenuIngredient{},
		&models.MealPlan{},
		&models.MealPlanMenu{},
	)
	if err != nil {
		L().Fatal("AutoMigrate failed", zap.Error(err))
	}
}
