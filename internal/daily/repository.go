package daily

import "context"

// Repository defines the daily-totals data-access contract.
type Repository interface {
	// AddProtein folds grams into the running total for (sessionID, date),
	// creating the row on first use, and returns the new total and goal.
	// The increment must be a single atomic upsert so two concurrent
	// submissions for the same day both count.
	AddProtein(ctx context.Context, sessionID, date string, grams float64) (total, goal float64, err error)

	// Get returns the row for (sessionID, date). A missing row is not an
	// error: it comes back zeroed with the default goal.
	Get(ctx context.Context, sessionID, date string) (*Total, error)

	// SetGoal overrides the protein goal for one day, creating the row
	// if the day has no meals yet.
	SetGoal(ctx context.Context, sessionID, date string, goal float64) (*Total, error)
}
