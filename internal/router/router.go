package router

import (
	"net/http"
	"time"

	"github.com/ktbttgg/protein-v1/internal/daily"
	"github.com/ktbttgg/protein-v1/internal/meal"
	"github.com/ktbttgg/protein-v1/internal/middleware"
	"github.com/ktbttgg/protein-v1/internal/photo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func New(
	mealHandler *meal.Handler,
	photoHandler *photo.Handler,
	dailyHandler *daily.Handler,
) *gin.Engine {

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Disallowed verbs on known routes get a 405, not a 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── UPLOADS ─────────────────────────
	uploads := r.Group("/uploads")
	uploads.Use(middleware.RequireSession())
	{
		uploads.POST("", photoHandler.Upload)
	}

	// ───────────────────────── MEALS ─────────────────────────
	meals := r.Group("/meals")
	{
		meals.POST("/analyze", mealHandler.Analyze)
		meals.GET("", mealHandler.ListDay)
	}

	// ───────────────────────── DAILY TOTALS ─────────────────────────
	days := r.Group("/days")
	{
		days.GET("/:date", dailyHandler.GetDay)
		days.PUT("/:date/goal", dailyHandler.SetGoal)
	}

	return r
}
