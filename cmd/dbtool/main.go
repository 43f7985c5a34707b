// Command dbtool creates the application schema and seeds the rate table.
// It is meant for local setup and demo environments; production rate
// changes go through the administrative process, not this tool.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/olzhasbek/qazcargo/internal/config"
	"github.com/olzhasbek/qazcargo/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("Initializing database schema...")
	if err := database.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding rate table...")
	if err := database.Seed(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
