package meal

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository backs handler and service tests without Postgres.
type InMemoryRepository struct {
	mu       sync.Mutex
	meals    map[string]*Meal
	analyses map[string]*Analysis // keyed by meal id
	order    []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		meals:    make(map[string]*Meal),
		analyses: make(map[string]*Analysis),
	}
}

func (r *InMemoryRepository) InsertMeal(ctx context.Context, m *Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	copied := *m
	r.meals[m.ID] = &copied
	r.order = append(r.order, m.ID)
	return nil
}

func (r *InMemoryRepository) InsertAnalysis(ctx context.Context, a *Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.meals[a.MealID]; !ok {
		return errors.New("meal not found")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	copied := *a
	r.analyses[a.MealID] = &copied
	return nil
}

func (r *InMemoryRepository) ListByDay(ctx context.Context, sessionID, date string) ([]LoggedMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []LoggedMeal
	for _, id := range r.order {
		m := r.meals[id]
		if m.SessionID != sessionID || m.Date != date {
			continue
		}

		lm := LoggedMeal{
			MealID:     m.ID,
			MealType:   m.MealType,
			MealText:   m.MealText,
			Confidence: ConfidenceLow,
			CreatedAt:  m.CreatedAt,
		}
		if a, ok := r.analyses[m.ID]; ok {
			lm.ProteinGrams = a.ProteinGrams
			lm.Confidence = a.Confidence
			lm.MealSummary = a.MealSummary
		}
		out = append(out, lm)
	}
	return out, nil
}

// GetMeal and GetAnalysis let tests assert on persisted rows.
func (r *InMemoryRepository) GetMeal(id string) *Meal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meals[id]
}

func (r *InMemoryRepository) GetAnalysis(mealID string) *Analysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.analyses[mealID]
}

func (r *InMemoryRepository) MealCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meals)
}
