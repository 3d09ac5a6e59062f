package meal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ktbttgg/protein-v1/internal/daily"
	"github.com/ktbttgg/protein-v1/internal/llm"
)

type fakeStorage struct {
	err error
}

func (f *fakeStorage) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://signed.example/" + key, nil
}

type fakeLLM struct {
	out   string
	err   error
	calls int
}

func (f *fakeLLM) AnalyzeMeal(ctx context.Context, req llm.AnalysisRequest) (string, error) {
	f.calls++
	return f.out, f.err
}

const goodModelOutput = `{
	"protein_grams": 25,
	"confidence": "high",
	"notes": "Grilled chicken with rice and salad.",
	"fat_risk": "low",
	"fibre_risk": "medium",
	"carb_type": "mixed",
	"meal_summary": "Chicken, rice, side salad",
	"coaching": {
		"five_min_fix": "Add a spoon of yogurt on the side.",
		"next_time_tweak": "Next time, grill an extra chicken thigh alongside the rice.",
		"reason": "It keeps you full through the afternoon."
	}
}`

func setupService(model *fakeLLM) (*Service, *InMemoryRepository, *daily.InMemoryRepository) {
	repo := NewInMemoryRepository()
	dailyRepo := daily.NewInMemoryRepository()

	svc := NewService(repo, &fakeStorage{}, model, daily.NewService(dailyRepo))
	svc.fetchImage = func(ctx context.Context, url string) ([]byte, string, error) {
		return []byte("not-a-real-jpeg"), "image/jpeg", nil
	}

	return svc, repo, dailyRepo
}

func submission() Submission {
	return Submission{
		SessionID: "device-1",
		Date:      "2025-03-10",
		MealText:  "chicken and rice",
		MealType:  "lunch",
		PhotoPath: "meals/device-1/abc.jpg",
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	model := &fakeLLM{out: goodModelOutput}
	svc, repo, _ := setupService(model)

	result, err := svc.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}

	if !result.Success || result.MealID == "" {
		t.Fatal("expected a successful result with a meal id")
	}
	if result.Estimate.ProteinGrams != 25 || result.Estimate.Confidence != ConfidenceHigh {
		t.Errorf("estimate = %+v", result.Estimate)
	}
	if result.Coaching.ScenarioID != ScenarioMediumProtein {
		t.Errorf("scenario = %s, want MEDIUM_PROTEIN", result.Coaching.ScenarioID)
	}

	// High confidence + well-formed text: model coaching is used verbatim.
	if result.Coaching.FiveMinFix != "Add a spoon of yogurt on the side." {
		t.Errorf("expected model coaching, got %q", result.Coaching.FiveMinFix)
	}

	if result.Daily.ProteinTotal != 25 || result.Daily.ProteinGoal != 120 || result.Daily.Remaining != 95 {
		t.Errorf("daily = %+v", result.Daily)
	}

	a := repo.GetAnalysis(result.MealID)
	if a == nil {
		t.Fatal("analysis row not persisted")
	}
	if a.ScenarioID != ScenarioMediumProtein || a.NextTimeTweak == "" {
		t.Errorf("persisted analysis = %+v", a)
	}
	if model.calls != 1 {
		t.Errorf("llm calls = %d, want 1", model.calls)
	}
}

func TestAnalyzeAccumulatesWithinDay(t *testing.T) {
	model := &fakeLLM{out: goodModelOutput}
	svc, _, _ := setupService(model)

	first, err := svc.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}
	if first.Daily.ProteinTotal != 25 || first.Daily.Remaining != 95 {
		t.Fatalf("first daily = %+v", first.Daily)
	}

	model.out = strings.Replace(goodModelOutput, `"protein_grams": 25`, `"protein_grams": 30`, 1)
	second, err := svc.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}
	if second.Daily.ProteinTotal != 55 || second.Daily.Remaining != 65 {
		t.Fatalf("second daily = %+v", second.Daily)
	}

	// A meal on another date starts its own total.
	other := submission()
	other.Date = "2025-03-11"
	third, err := svc.Analyze(context.Background(), other)
	if err != nil {
		t.Fatal(err)
	}
	if third.Daily.ProteinTotal != 30 {
		t.Fatalf("other-date daily = %+v", third.Daily)
	}
}

func TestAnalyzeDuplicateSubmissionDoubleCounts(t *testing.T) {
	// Not a bug: each submission is a distinct logged meal.
	model := &fakeLLM{out: goodModelOutput}
	svc, repo, _ := setupService(model)

	if _, err := svc.Analyze(context.Background(), submission()); err != nil {
		t.Fatal(err)
	}
	result, err := svc.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}

	if repo.MealCount() != 2 {
		t.Errorf("meal rows = %d, want 2", repo.MealCount())
	}
	if result.Daily.ProteinTotal != 50 {
		t.Errorf("total = %v, want 50", result.Daily.ProteinTotal)
	}
}

func TestAnalyzeMissingFields(t *testing.T) {
	svc, repo, _ := setupService(&fakeLLM{out: goodModelOutput})

	cases := []func(*Submission){
		func(s *Submission) { s.SessionID = "" },
		func(s *Submission) { s.Date = "" },
		func(s *Submission) { s.PhotoPath = "" },
	}

	for _, mutate := range cases {
		sub := submission()
		mutate(&sub)

		_, err := svc.Analyze(context.Background(), sub)
		if !errors.Is(err, ErrBadRequest) {
			t.Errorf("Analyze(%+v) error = %v, want ErrBadRequest", sub, err)
		}
	}

	if repo.MealCount() != 0 {
		t.Errorf("bad submissions must not persist meals, got %d rows", repo.MealCount())
	}
}

func TestAnalyzeInvalidProteinMakesNoDailyUpdate(t *testing.T) {
	model := &fakeLLM{out: `{"protein_grams": 1200, "confidence": "high"}`}
	svc, repo, dailyRepo := setupService(model)

	_, err := svc.Analyze(context.Background(), submission())
	if !errors.Is(err, ErrInvalidProtein) {
		t.Fatalf("error = %v, want ErrInvalidProtein", err)
	}

	// The meal row stays (visible inconsistency), the analysis and the
	// daily total do not.
	if repo.MealCount() != 1 {
		t.Errorf("meal rows = %d, want 1", repo.MealCount())
	}
	total, err := dailyRepo.Get(context.Background(), "device-1", "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if total.ProteinTotal != 0 {
		t.Errorf("daily total = %v, want 0", total.ProteinTotal)
	}
}

func TestAnalyzeLowConfidenceForcesFallback(t *testing.T) {
	out := strings.Replace(goodModelOutput, `"confidence": "high"`, `"confidence": "low"`, 1)
	svc, _, _ := setupService(&fakeLLM{out: out})

	result, err := svc.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}

	if result.Coaching.ScenarioID != ScenarioUnknownMeal {
		t.Errorf("scenario = %s, want UNKNOWN_MEAL", result.Coaching.ScenarioID)
	}
	want := FallbackCoaching(ScenarioUnknownMeal, result.Estimate.ProteinGrams)
	if result.Coaching.FiveMinFix != want.FiveMinFix {
		t.Errorf("low confidence must use fallback coaching, got %q", result.Coaching.FiveMinFix)
	}
}

func TestAnalyzeCoachingDisabledAlwaysUsesFallback(t *testing.T) {
	svc, _, _ := setupService(&fakeLLM{out: goodModelOutput})
	svc.DisableCoaching()

	result, err := svc.Analyze(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}

	want := FallbackCoaching(ScenarioMediumProtein, 25)
	if result.Coaching.FiveMinFix != want.FiveMinFix {
		t.Errorf("disabled coaching must use fallback, got %q", result.Coaching.FiveMinFix)
	}
}

func TestAnalyzeInferenceFailure(t *testing.T) {
	svc, repo, dailyRepo := setupService(&fakeLLM{err: errors.New("model unavailable")})

	_, err := svc.Analyze(context.Background(), submission())
	if !errors.Is(err, ErrInference) {
		t.Fatalf("error = %v, want ErrInference", err)
	}

	// Meal persisted before the call; nothing after it.
	if repo.MealCount() != 1 {
		t.Errorf("meal rows = %d, want 1", repo.MealCount())
	}
	total, _ := dailyRepo.Get(context.Background(), "device-1", "2025-03-10")
	if total.ProteinTotal != 0 {
		t.Errorf("daily total = %v, want 0", total.ProteinTotal)
	}
}

func TestAnalyzeSignedURLFailure(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, &fakeStorage{err: errors.New("bucket down")},
		&fakeLLM{out: goodModelOutput}, daily.NewService(daily.NewInMemoryRepository()))

	_, err := svc.Analyze(context.Background(), submission())
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("error = %v, want ErrStorage", err)
	}
	if repo.MealCount() != 0 {
		t.Errorf("no meal should be persisted when the photo can't be resolved")
	}
}
