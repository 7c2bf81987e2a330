package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/config"
)

// EnsureDatabaseExists creates the configured database through the admin
// account. It is a no-op when no admin credentials are configured.
func EnsureDatabaseExists(ctx context.Context, cfg config.DatabaseConfig) error {
	if cfg.AdminUser == "" {
		return nil
	}
	if cfg.Database == "" {
		return fmt.Errorf("DB_DATABASE environment variable is required")
	}

	dsn := DSN(cfg.AdminUser, cfg.AdminPassword, cfg.Host, cfg.Port, "postgres")
	log.Printf("Checking if database '%s' exists...", cfg.Database)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := pool.QueryRow(ctx, query, cfg.Database).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		log.Printf("Database '%s' already exists", cfg.Database)
		return nil
	}

	log.Printf("Database '%s' does not exist. Creating it...", cfg.Database)
	// CREATE DATABASE cannot run inside a transaction
	createQuery := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{cfg.Database}.Sanitize())
	if _, err := pool.Exec(ctx, createQuery); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	log.Printf("Database '%s' created successfully", cfg.Database)
	return nil
}

// DSN builds a postgres:// URL with the credentials escaped.
func DSN(user, password, host, port, database string) string {
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		url.UserPassword(user, password).String(),
		host,
		port,
		url.PathEscape(database),
	)
}

// Connect opens and pings a pool for the user store.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("DB_HOST and DB_DATABASE environment variables are required")
	}

	log.Printf("Connecting to database: postgres://%s:***@%s:%s/%s", cfg.Username, cfg.Host, cfg.Port, cfg.Database)
	return Open(ctx, DSN(cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database))
}

// Open creates a pool from a connection string and verifies it.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your .env file): %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection pool established successfully")
	return pool, nil
}
