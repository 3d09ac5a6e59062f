package daily

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests without Postgres. The mutex stands in
// for the database's atomic upsert.
type InMemoryRepository struct {
	mu   sync.Mutex
	rows map[string]*Total // keyed by sessionID+"|"+date
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*Total)}
}

func key(sessionID, date string) string {
	return sessionID + "|" + date
}

func (r *InMemoryRepository) AddProtein(
	ctx context.Context,
	sessionID, date string,
	grams float64,
) (float64, float64, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.rows[key(sessionID, date)]
	if !ok {
		t = &Total{
			ID:          uuid.New().String(),
			SessionID:   sessionID,
			Date:        date,
			ProteinGoal: DefaultProteinGoal,
		}
		r.rows[key(sessionID, date)] = t
	}

	t.ProteinTotal += grams
	t.UpdatedAt = time.Now()

	return t.ProteinTotal, t.ProteinGoal, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, sessionID, date string) (*Total, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.rows[key(sessionID, date)]; ok {
		copied := *t
		return &copied, nil
	}

	return &Total{
		SessionID:   sessionID,
		Date:        date,
		ProteinGoal: DefaultProteinGoal,
	}, nil
}

func (r *InMemoryRepository) SetGoal(
	ctx context.Context,
	sessionID, date string,
	goal float64,
) (*Total, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.rows[key(sessionID, date)]
	if !ok {
		t = &Total{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Date:      date,
		}
		r.rows[key(sessionID, date)] = t
	}

	t.ProteinGoal = goal
	t.UpdatedAt = time.Now()

	copied := *t
	return &copied, nil
}
