package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"vocalnotes/pkg/logger"

	_ "github.com/lib/pq"
)

// Connect opens the Postgres document store. DATABASE_URL wins; otherwise
// the connection string is assembled from the discrete pg variables.
func Connect(databaseURL string) *sql.DB {
	connStr := databaseURL
	if connStr == "" {
		dbUser := strings.TrimSpace(os.Getenv("PGUSER"))
		dbPass := strings.TrimSpace(os.Getenv("PGPASSWORD"))
		dbHost := strings.TrimSpace(os.Getenv("PGHOST"))
		dbPort := strings.TrimSpace(os.Getenv("PGPORT"))
		dbName := strings.TrimSpace(os.Getenv("PGDATABASE"))
		connStr = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Sugar.Fatalf("Failed to open database connection: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			return db
		}
		logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	logger.Sugar.Fatal("Could not connect to database after retries")
	return nil
}
