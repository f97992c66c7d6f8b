package config

import (
	"fmt"
	"log"
	"os"

	"github.com/adtm0/smartbite/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// FoodDataConfig carries the USDA FoodData Central credentials. The client
// receives this struct explicitly; a missing API key surfaces as an
// unavailable lookup at call time instead of a silently degraded global.
type FoodDataConfig struct {
	APIKey  string
	BaseURL string
}

type AppConfig struct {
	FoodData FoodDataConfig
}

var App AppConfig

// Load reads .env (when present) and fills App from the process environment.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using process environment")
	}

	App = AppConfig{
		FoodData: FoodDataConfig{
			APIKey:  os.Getenv("USDA_API_KEY"),
			BaseURL: os.Getenv("USDA_API_BASE_URL"),
		},
	}

	if App.FoodData.APIKey == "" {
		log.Printf("USDA_API_KEY not set - food lookups will fail as unavailable")
	}
}

func InitDB() {
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
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.FoodEntry{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
