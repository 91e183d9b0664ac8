package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"callcenter-analysis-be/internal/model"
	"callcenter-analysis-be/pkg/database"
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
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate
	models := model.AllModels()
	log.Printf("Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Postgres-only reporting view; SQLite skips it.
	if db.Dialector.Name() == "postgres" {
		view := `CREATE OR REPLACE VIEW category_resolution AS
		 SELECT category, COUNT(*) AS total, SUM(CASE WHEN is_resolved THEN 1 ELSE 0 END) AS resolved
		 FROM conversations
		 GROUP BY category;`
		if err := db.Exec(view).Error; err != nil {
			log.Printf("Warn: Failed to create reporting view: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
