package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/config"
	"github.com/JKLegendary/enterprise/middlewares"
	"github.com/JKLegendary/enterprise/models"
	"github.com/JKLegendary/enterprise/router"
	"github.com/JKLegendary/enterprise/services"
	"github.com/JKLegendary/enterprise/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Station views refresh on every mutation; the ticker reconciles
	// anything a kick missed.
	monitor := services.NewViewMonitor(db)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, monitor)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Order{},
		&models.OrderLine{},
		&models.SequenceCounter{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	// The allocator assumes the singleton row exists.
	if err := services.EnsureCounter(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed sequence counter: %v", err)
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
}
