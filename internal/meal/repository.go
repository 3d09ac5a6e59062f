package meal

import "context"

// Repository defines the data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	InsertMeal(ctx context.Context, m *Meal) error
	InsertAnalysis(ctx context.Context, a *Analysis) error
	ListByDay(ctx context.Context, sessionID, date string) ([]LoggedMeal, error)
}
