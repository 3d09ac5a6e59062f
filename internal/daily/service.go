package daily

import (
	"context"
	"errors"
	"fmt"
)

var ErrBadRequest = errors.New("missing required field")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddProtein satisfies the meal pipeline's accumulator contract.
func (s *Service) AddProtein(
	ctx context.Context,
	sessionID, date string,
	grams float64,
) (float64, float64, error) {
	return s.repo.AddProtein(ctx, sessionID, date, grams)
}

func (s *Service) Get(ctx context.Context, sessionID, date string) (*Total, error) {
	if sessionID == "" || date == "" {
		return nil, ErrBadRequest
	}
	return s.repo.Get(ctx, sessionID, date)
}

func (s *Service) SetGoal(ctx context.Context, sessionID, date string, goal float64) (*Total, error) {
	if sessionID == "" || date == "" {
		return nil, ErrBadRequest
	}
	if goal <= 0 {
		return nil, fmt.Errorf("%w: protein_goal must be positive", ErrBadRequest)
	}
	return s.repo.SetGoal(ctx, sessionID, date, goal)
}
