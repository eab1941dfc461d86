package storage

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"housing-connect-bot/models"
)

// Store wraps the database connection used to persist scraped listings.
type Store struct {
	conn *sql.DB
}

// Configured reports whether a database connection is configured via
// environment variables. When it returns false the scraper skips the
// database entirely and only writes flat files.
func Configured() bool {
	return os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != ""
}

// NewStore opens a database connection. The connection string comes from
// DATABASE_URL, or is built from DB_HOST / DB_PORT / DB_USER / DB_PASSWORD /
// DB_NAME / DB_SSLMODE.
func NewStore() (*Store, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "housing_connect_bot")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "housing_connect_bot")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{conn: conn}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// initSchema creates the lotteries table if it doesn't exist.
func (s *Store) initSchema() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS lotteries (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			location TEXT,
			units_available INTEGER,
			days_until_closing INTEGER,
			min_income INTEGER,
			max_income INTEGER,
			is_applied BOOLEAN NOT NULL DEFAULT FALSE,
			url TEXT NOT NULL,
			scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create lotteries table: %w", err)
	}
	return nil
}

// SaveListings upserts the given listings and returns the number of rows
// written. Re-scraped listings overwrite their previous row.
func (s *Store) SaveListings(category models.Category, listings []models.Listing) (int, error) {
	saved := 0
	for _, l := range listings {
		_, err := s.conn.Exec(`
			INSERT INTO lotteries (id, category, title, location, units_available,
				days_until_closing, min_income, max_income, is_applied, url, scraped_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
			ON CONFLICT (id) DO UPDATE SET
				category = EXCLUDED.category,
				title = EXCLUDED.title,
				location = EXCLUDED.location,
				units_available = EXCLUDED.units_available,
				days_until_closing = EXCLUDED.days_until_closing,
				min_income = EXCLUDED.min_income,
				max_income = EXCLUDED.max_income,
				is_applied = EXCLUDED.is_applied,
				url = EXCLUDED.url,
				scraped_at = NOW()
		`, l.ID, string(category), l.Title, l.Location, l.UnitsAvailable,
			l.DaysUntilClosing, l.MinIncome, l.MaxIncome, l.IsApplied, l.URL)
		if err != nil {
			return saved, fmt.Errorf("failed to save lottery %s: %w", l.ID, err)
		}
		saved++
	}
	return saved, nil
}
