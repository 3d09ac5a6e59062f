package meal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ktbttgg/protein-v1/internal/llm"
	"github.com/ktbttgg/protein-v1/internal/storage"
)

// Storage is the slice of the object store the pipeline needs.
type Storage interface {
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// DailyAccumulator folds a newly estimated portion into the running
// per-session, per-date total and reports the new state.
type DailyAccumulator interface {
	AddProtein(ctx context.Context, sessionID, date string, grams float64) (total, goal float64, err error)
}

type Service struct {
	repo    Repository
	storage Storage
	llm     llm.Client
	totals  DailyAccumulator

	signedURLTTL    time.Duration
	coachingEnabled bool

	// swapped out in tests
	fetchImage func(ctx context.Context, url string) ([]byte, string, error)
}

func NewService(repo Repository, store Storage, client llm.Client, totals DailyAccumulator) *Service {
	return &Service{
		repo:            repo,
		storage:         store,
		llm:             client,
		totals:          totals,
		signedURLTTL:    15 * time.Minute,
		coachingEnabled: true,
		fetchImage:      storage.FetchBytes,
	}
}

func (s *Service) SetSignedURLTTL(d time.Duration) {
	if d > 0 {
		s.signedURLTTL = d
	}
}

// DisableCoaching switches the pipeline to the older estimate-only
// behavior: model coaching is never trusted and the canned fallback is
// always used.
func (s *Service) DisableCoaching() {
	s.coachingEnabled = false
}

// --------------------------------------------------
// ANALYZE ONE SUBMISSION (THE WHOLE PIPELINE)
// --------------------------------------------------
//
// The meal row is persisted before the inference call so a failed
// analysis still leaves the submission visible. There is no rollback:
// a meal without an analysis is an accepted, visible inconsistency.
func (s *Service) Analyze(ctx context.Context, sub Submission) (*AnalysisResult, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	photoURL, err := s.storage.SignedURL(ctx, sub.PhotoPath, s.signedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: signed url: %v", ErrStorage, err)
	}

	m := &Meal{
		SessionID: sub.SessionID,
		Date:      sub.Date,
		MealType:  normalizeMealType(sub.MealType),
		MealText:  sub.MealText,
		PhotoKey:  sub.PhotoPath,
	}
	if err := s.repo.InsertMeal(ctx, m); err != nil {
		return nil, fmt.Errorf("%w: insert meal: %v", ErrPersistence, err)
	}

	log.Printf("MEAL_LOGGED id=%s session=%s date=%s", m.ID, m.SessionID, m.Date)

	imageData, imageMIME, err := s.fetchImage(ctx, photoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch photo: %v", ErrStorage, err)
	}

	raw, err := s.llm.AnalyzeMeal(ctx, llm.AnalysisRequest{
		ImageData: imageData,
		ImageMIME: imageMIME,
		MealText:  sub.MealText,
		MealType:  m.MealType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	validated, err := ValidateAnalysis(raw)
	if err != nil {
		return nil, err
	}

	scenario, focus := ClassifyScenario(
		float64(validated.ProteinGrams),
		validated.Confidence,
		m.MealType,
	)

	coaching := FallbackCoaching(scenario, validated.ProteinGrams)
	if s.coachingEnabled && acceptModelCoaching(validated.Confidence, validated.Coaching) {
		coaching = validated.Coaching
	}

	a := &Analysis{
		MealID:        m.ID,
		ProteinGrams:  validated.ProteinGrams,
		Confidence:    validated.Confidence,
		Notes:         validated.Notes,
		MealSummary:   validated.MealSummary,
		FatRisk:       validated.FatRisk,
		FibreRisk:     validated.FibreRisk,
		CarbType:      validated.CarbType,
		ScenarioID:    scenario,
		FiveMinFix:    coaching.FiveMinFix,
		NextTimeTweak: coaching.NextTimeTweak,
		Reason:        coaching.Reason,
	}
	if err := s.repo.InsertAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("%w: insert analysis: %v", ErrPersistence, err)
	}

	total, goal, err := s.totals.AddProtein(ctx, m.SessionID, m.Date, float64(validated.ProteinGrams))
	if err != nil {
		return nil, fmt.Errorf("%w: daily total: %v", ErrPersistence, err)
	}

	log.Printf("MEAL_ANALYZED id=%s protein=%d confidence=%s scenario=%s",
		m.ID, validated.ProteinGrams, validated.Confidence, scenario)

	return &AnalysisResult{
		Success: true,
		MealID:  m.ID,
		Estimate: Estimate{
			ProteinGrams: validated.ProteinGrams,
			Confidence:   validated.Confidence,
			Notes:        validated.Notes,
		},
		Coaching: CoachingResult{
			ScenarioID:    scenario,
			Focus:         focus,
			FiveMinFix:    coaching.FiveMinFix,
			NextTimeTweak: coaching.NextTimeTweak,
			Reason:        coaching.Reason,
		},
		Daily: DailySummary{
			Date:         m.Date,
			ProteinTotal: total,
			ProteinGoal:  goal,
			Remaining:    goal - total,
		},
	}, nil
}

// ListDay returns the meals logged for one session and date.
func (s *Service) ListDay(ctx context.Context, sessionID, date string) ([]LoggedMeal, error) {
	if sessionID == "" || date == "" {
		return nil, fmt.Errorf("%w: session_id and date are required", ErrBadRequest)
	}

	meals, err := s.repo.ListByDay(ctx, sessionID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: list meals: %v", ErrPersistence, err)
	}
	return meals, nil
}

func validateSubmission(sub Submission) error {
	switch {
	case sub.SessionID == "":
		return fmt.Errorf("%w: session_id", ErrBadRequest)
	case sub.Date == "":
		return fmt.Errorf("%w: date", ErrBadRequest)
	case sub.PhotoPath == "":
		return fmt.Errorf("%w: photo_path", ErrBadRequest)
	}
	return nil
}

func normalizeMealType(t string) string {
	switch t {
	case TypeBreakfast, TypeLunch, TypeDinner, TypeSnack:
		return t
	default:
		return ""
	}
}
