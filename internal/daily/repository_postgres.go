package daily

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// ATOMIC INCREMENT (ONE STATEMENT, NO READ-THEN-WRITE)
// --------------------------------------------------
//
// The uniqueness constraint on (session_id, date) carries the whole
// contract: first meal of the day inserts the row, every later meal
// lands in the DO UPDATE arm, and the increment happens inside the
// statement so concurrent submissions cannot lose an update.
func (r *PostgresRepository) AddProtein(
	ctx context.Context,
	sessionID, date string,
	grams float64,
) (float64, float64, error) {

	var total, goal float64

	err := r.db.QueryRow(ctx, `
		INSERT INTO daily_totals (id, session_id, date, protein_total, protein_goal, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (session_id, date)
		DO UPDATE SET
			protein_total = daily_totals.protein_total + EXCLUDED.protein_total,
			updated_at = now()
		RETURNING protein_total, protein_goal
	`, uuid.New().String(), sessionID, date, grams, DefaultProteinGoal).Scan(&total, &goal)

	if err != nil {
		return 0, 0, err
	}

	return total, goal, nil
}

func (r *PostgresRepository) Get(
	ctx context.Context,
	sessionID, date string,
) (*Total, error) {

	t := &Total{
		SessionID:   sessionID,
		Date:        date,
		ProteinGoal: DefaultProteinGoal,
	}

	err := r.db.QueryRow(ctx, `
		SELECT id, protein_total, protein_goal, updated_at
		FROM daily_totals
		WHERE session_id = $1 AND date = $2
	`, sessionID, date).Scan(&t.ID, &t.ProteinTotal, &t.ProteinGoal, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No meals logged yet; report the zeroed default.
			t.UpdatedAt = time.Time{}
			return t, nil
		}
		return nil, err
	}

	return t, nil
}

func (r *PostgresRepository) SetGoal(
	ctx context.Context,
	sessionID, date string,
	goal float64,
) (*Total, error) {

	t := &Total{
		SessionID: sessionID,
		Date:      date,
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO daily_totals (id, session_id, date, protein_total, protein_goal, updated_at)
		VALUES ($1, $2, $3, 0, $4, now())
		ON CONFLICT (session_id, date)
		DO UPDATE SET
			protein_goal = EXCLUDED.protein_goal,
			updated_at = now()
		RETURNING id, protein_total, protein_goal, updated_at
	`, uuid.New().String(), sessionID, date, goal).
		Scan(&t.ID, &t.ProteinTotal, &t.ProteinGoal, &t.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return t, nil
}
