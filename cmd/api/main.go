package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ktbttgg/protein-v1/internal/daily"
	"github.com/ktbttgg/protein-v1/internal/db"
	"github.com/ktbttgg/protein-v1/internal/llm"
	"github.com/ktbttgg/protein-v1/internal/meal"
	"github.com/ktbttgg/protein-v1/internal/photo"
	"github.com/ktbttgg/protein-v1/internal/router"
	"github.com/ktbttgg/protein-v1/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	mealRepo := meal.NewPostgresRepository(pgDB)
	dailyRepo := daily.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	dailyService := daily.NewService(dailyRepo)
	photoService := photo.NewService(r2Client)

	mealService := meal.NewService(
		mealRepo,
		r2Client,
		llm.NewGeminiClient(),
		dailyService,
	)

	if ttl, err := strconv.Atoi(os.Getenv("SIGNED_URL_TTL_MINUTES")); err == nil && ttl > 0 {
		mealService.SetSignedURLTTL(time.Duration(ttl) * time.Minute)
	}

	// Older clients ran the estimate-only pipeline; the flag keeps that
	// behavior reachable without a second code path.
	if os.Getenv("COACHING_ENABLED") == "false" {
		mealService.DisableCoaching()
	}

	// ───────────────────────── HANDLERS + ROUTES ─────────────────────────
	r := router.New(
		meal.NewHandler(mealService),
		photo.NewHandler(photoService),
		daily.NewHandler(dailyService),
	)

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("API running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
