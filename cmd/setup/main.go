// Command setup creates the application database if it does not exist
// and applies the embedded migrations. Intended for local development;
// the server applies migrations itself on startup.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/amigo-fit/amigo-server/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "amigo")

	ctx := context.Background()

	// Connect to the default database to create the target one
	adminConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	conn, err := pgx.Connect(ctx, adminConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if exists {
		log.Printf("Database %s already exists", dbname)
	} else {
		log.Printf("Creating database %s...", dbname)
		if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbname)); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		log.Println("Database created")
	}
	conn.Close(ctx)

	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
	if err := database.RunMigrations(connString); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Setup complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
