package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"kambaz_api/internal/domain/repository"
	"kambaz_api/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

// Connect opens the PostgreSQL pool and creates the documents table if it
// does not exist yet.
func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.PgConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Verify connection
	if err = DB.PingContext(ctx); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = repository.EnsureDocumentsSchema(ctx, DB); err != nil {
		log.Fatalf("Error preparing documents table: %v", err)
	}

	fmt.Println("Successfully connected to PostgreSQL database!")
}

func Close() {
	if DB != nil {
		DB.Close()
		fmt.Println("Database connection closed.")
	}
}
