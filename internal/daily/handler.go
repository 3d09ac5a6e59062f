package daily

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
// GET /days/:date?session_id=...
// --------------------------------------------------
func (h *Handler) GetDay(c *gin.Context) {
	sessionID := c.Query("session_id")
	date := c.Param("date")

	t, err := h.service.Get(c.Request.Context(), sessionID, date)
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and date are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          t.Date,
		"protein_total": t.ProteinTotal,
		"protein_goal":  t.ProteinGoal,
		"remaining":     t.Remaining(),
	})
}

// --------------------------------------------------
// PUT /days/:date/goal
// --------------------------------------------------
func (h *Handler) SetGoal(c *gin.Context) {
	var req struct {
		SessionID   string  `json:"session_id"`
		ProteinGoal float64 `json:"protein_goal"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.service.SetGoal(c.Request.Context(), req.SessionID, c.Param("date"), req.ProteinGoal)
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          t.Date,
		"protein_total": t.ProteinTotal,
		"protein_goal":  t.ProteinGoal,
		"remaining":     t.Remaining(),
	})
}
