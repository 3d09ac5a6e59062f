package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("connected to PostgreSQL")

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// MEALS
	// -------------------------------
	mealsSQL := `
		CREATE TABLE IF NOT EXISTS meals (
			id UUID PRIMARY KEY,
			session_id VARCHAR(128) NOT NULL,
			date VARCHAR(10) NOT NULL,
			meal_type VARCHAR(20) NULL,
			meal_text TEXT NULL,
			photo_key VARCHAR(500) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, mealsSQL); err != nil {
		return err
	}

	mealsIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_meals_session_date
		ON meals (session_id, date)
	`
	if _, err := db.Exec(ctx, mealsIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// MEAL ANALYSIS (ONE ROW PER MEAL, WRITTEN ONCE)
	// -------------------------------
	analysisSQL := `
		CREATE TABLE IF NOT EXISTS meal_analysis (
			id UUID PRIMARY KEY,
			meal_id UUID NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
			protein_grams INTEGER NOT NULL CHECK (protein_grams >= 0),
			confidence VARCHAR(10) NOT NULL
				CHECK (confidence IN ('low', 'medium', 'high')),
			notes TEXT NOT NULL DEFAULT '',
			meal_summary TEXT NULL,
			fat_risk VARCHAR(10) NOT NULL DEFAULT 'medium'
				CHECK (fat_risk IN ('low', 'medium', 'high')),
			fibre_risk VARCHAR(10) NOT NULL DEFAULT 'medium'
				CHECK (fibre_risk IN ('low', 'medium', 'high')),
			carb_type VARCHAR(20) NOT NULL DEFAULT 'mixed'
				CHECK (carb_type IN ('low', 'mixed', 'refined_heavy')),
			scenario_id VARCHAR(40) NULL,
			five_min_fix TEXT NULL,
			next_time_tweak TEXT NULL,
			reason TEXT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, analysisSQL); err != nil {
		return err
	}

	// -------------------------------
	// DAILY TOTALS (ONE ROW PER SESSION+DATE)
	// -------------------------------
	dailySQL := `
		CREATE TABLE IF NOT EXISTS daily_totals (
			id UUID PRIMARY KEY,
			session_id VARCHAR(128) NOT NULL,
			date VARCHAR(10) NOT NULL,
			protein_total DOUBLE PRECISION NOT NULL DEFAULT 0
				CHECK (protein_total >= 0),
			protein_goal DOUBLE PRECISION NOT NULL DEFAULT 120,
			updated_at TIMESTAMPTZ DEFAULT now(),
			UNIQUE (session_id, date)
		)
	`
	if _, err := db.Exec(ctx, dailySQL); err != nil {
		return err
	}

	log.Println("schema initialized")
	return nil
}
