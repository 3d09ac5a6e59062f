package daily

import "time"

// DefaultProteinGoal is the per-day goal in grams until a row overrides it.
const DefaultProteinGoal = 120

// Total is the single running row for one session and date.
type Total struct {
	ID           string    `json:"-"`
	SessionID    string    `json:"session_id"`
	Date         string    `json:"date"`
	ProteinTotal float64   `json:"protein_total"`
	ProteinGoal  float64   `json:"protein_goal"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t Total) Remaining() float64 {
	return t.ProteinGoal - t.ProteinTotal
}
