package db

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	// Load environment variables from .env file; a missing file is fine in
	// containerized deployments where the environment is set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Println("Error connecting to the database:", err)
		return nil, err
	}

	log.Println("ShareLand DB connected successfully!")

	return db, nil
}
