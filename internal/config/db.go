package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN           string
	MaxRetries    int
	RetryInterval time.Duration
}

// LoadDBConfig loads database configuration from environment variables.
// DATABASE_URL wins over the individual DB_* variables.
func LoadDBConfig() (*DBConfig, error) {
	retries, err := getenvInt("DB_CONNECT_RETRIES", 5)
	if err != nil {
		return nil, err
	}
	interval, err := getenvDuration("DB_RETRY_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cfg := &DBConfig{
		MaxRetries:    int(retries),
		RetryInterval: interval,
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DSN = url
		return cfg, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	cfg.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, getenv("DB_SSLMODE", "disable"))
	return cfg, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg *DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				logger.Info("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn("failed to connect to database",
			"attempt", i+1, "max_attempts", maxRetries, "retry_in", cfg.RetryInterval, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Execer is the part of the pool AutoMigrate needs
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Schema creates the tables if they don't exist. block_name is unique so
// concurrent default-block inserts collapse onto a single row.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('student', 'warden'))
	);

	CREATE TABLE IF NOT EXISTS block (
		block_id SERIAL PRIMARY KEY,
		block_name TEXT UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS student (
		student_id INT PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
		room TEXT NOT NULL,
		block_id INT NOT NULL REFERENCES block(block_id),
		usn TEXT
	);

	CREATE TABLE IF NOT EXISTS warden (
		warden_id INT PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
		block_id INT NOT NULL REFERENCES block(block_id)
	);

	CREATE TABLE IF NOT EXISTS complaint (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		room TEXT,
		block_id INT REFERENCES block(block_id),
		student_id INT REFERENCES student(student_id) ON DELETE CASCADE,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		assigned_at TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_complaint_student_created ON complaint(student_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_complaint_created ON complaint(created_at DESC);
	`

// AutoMigrate applies Schema
func AutoMigrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	return nil
}
