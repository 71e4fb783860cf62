package main

import (
	"log"
	"os"

	"shopping-assistant-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{DSN: dsn, Verbose: true})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Running AutoMigrate for %d tables...", len(database.Models()))

	// 3. Extensions + AutoMigrate
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: %v", err)
	}

	// 4. Post-Migration: indexes AutoMigrate cannot express
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_unknown_queries_ranking ON unknown_queries (frequency DESC, last_seen DESC);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
