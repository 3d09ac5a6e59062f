package meal

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// INSERT MEAL (BEFORE INFERENCE, NEVER MUTATED)
// --------------------------------------------------
func (r *PostgresRepository) InsertMeal(ctx context.Context, m *Meal) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO meals (id, session_id, date, meal_type, meal_text, photo_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`, m.ID, m.SessionID, m.Date, nullIfEmpty(m.MealType), nullIfEmpty(m.MealText), m.PhotoKey)

	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --------------------------------------------------
// INSERT ANALYSIS (ONCE PER MEAL, AFTER VALIDATION)
// --------------------------------------------------
func (r *PostgresRepository) InsertAnalysis(ctx context.Context, a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO meal_analysis (
			id, meal_id, protein_grams, confidence, notes, meal_summary,
			fat_risk, fibre_risk, carb_type,
			scenario_id, five_min_fix, next_time_tweak, reason,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
	`,
		a.ID, a.MealID, a.ProteinGrams, a.Confidence, a.Notes, a.MealSummary,
		a.FatRisk, a.FibreRisk, a.CarbType,
		a.ScenarioID, a.FiveMinFix, a.NextTimeTweak, a.Reason,
	)

	return err
}

// --------------------------------------------------
// DAY VIEW (MEALS JOINED WITH THEIR ANALYSIS)
// --------------------------------------------------
func (r *PostgresRepository) ListByDay(
	ctx context.Context,
	sessionID, date string,
) ([]LoggedMeal, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			m.id,
			COALESCE(m.meal_type, ''),
			COALESCE(m.meal_text, ''),
			COALESCE(a.protein_grams, 0),
			COALESCE(a.confidence, 'low'),
			COALESCE(a.meal_summary, ''),
			m.created_at
		FROM meals m
		LEFT JOIN meal_analysis a ON a.meal_id = m.id
		WHERE m.session_id = $1 AND m.date = $2
		ORDER BY m.created_at ASC
	`, sessionID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []LoggedMeal

	for rows.Next() {
		var lm LoggedMeal
		if err := rows.Scan(
			&lm.MealID,
			&lm.MealType,
			&lm.MealText,
			&lm.ProteinGrams,
			&lm.Confidence,
			&lm.MealSummary,
			&lm.CreatedAt,
		); err != nil {
			return nil, err
		}
		meals = append(meals, lm)
	}

	return meals, rows.Err()
}
