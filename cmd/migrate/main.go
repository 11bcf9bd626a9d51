package main

import (
	"log"

	"taskflow-client/internal/config"
	"taskflow-client/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Migrating devstore tables...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}
	log.Println("Migration complete")
}
