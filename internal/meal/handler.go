package meal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /meals/analyze
// --------------------------------------------------
func (h *Handler) Analyze(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), sub)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// GET /meals?session_id=...&date=...
// --------------------------------------------------
func (h *Handler) ListDay(c *gin.Context) {
	sessionID := c.Query("session_id")
	date := c.Query("date")

	meals, err := h.service.ListDay(c.Request.Context(), sessionID, date)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if meals == nil {
		meals = []LoggedMeal{}
	}

	c.JSON(http.StatusOK, gin.H{
		"meals": meals,
		"count": len(meals),
	})
}

// Every downstream failure surfaces as a plain 500; only a bad
// submission is the client's fault.
func statusFor(err error) int {
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
