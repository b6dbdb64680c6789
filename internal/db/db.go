// Package db provides PostgreSQL storage for resume items and the saved
// resume document.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS resume (
		id SERIAL PRIMARY KEY,
		content TEXT NOT NULL
	)`,
	`INSERT INTO resume (id, content) VALUES (1, '{}') ON CONFLICT (id) DO NOTHING`,
	`CREATE TABLE IF NOT EXISTS work_experience (
		id SERIAL PRIMARY KEY,
		experience_text TEXT NOT NULL UNIQUE,
		embedding TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id SERIAL PRIMARY KEY,
		skill_text TEXT NOT NULL UNIQUE,
		embedding TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS accomplishments (
		id SERIAL PRIMARY KEY,
		accomplishment_text TEXT NOT NULL UNIQUE,
		embedding TEXT,
		work_experience_id INTEGER REFERENCES work_experience(id)
	)`,
	`CREATE TABLE IF NOT EXISTS professional_summaries (
		id SERIAL PRIMARY KEY,
		summary_text TEXT NOT NULL UNIQUE,
		embedding TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS education (
		id SERIAL PRIMARY KEY,
		education_text TEXT NOT NULL UNIQUE,
		embedding TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS technical_projects (
		id SERIAL PRIMARY KEY,
		project_text TEXT NOT NULL UNIQUE,
		embedding TEXT
	)`,
}

// Migrate creates any missing tables and seeds the singleton resume row.
// Every statement is idempotent, so running it on every startup is safe.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
