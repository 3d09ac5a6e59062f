package meal

import "time"

// Meal types accepted from the client. Anything else is treated as unset.
const (
	TypeBreakfast = "breakfast"
	TypeLunch     = "lunch"
	TypeDinner    = "dinner"
	TypeSnack     = "snack"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

type CarbType string

const (
	CarbLow          CarbType = "low"
	CarbMixed        CarbType = "mixed"
	CarbRefinedHeavy CarbType = "refined_heavy"
)

type ScenarioID string

const (
	ScenarioUnknownMeal         ScenarioID = "UNKNOWN_MEAL"
	ScenarioLowProteinBreakfast ScenarioID = "LOW_PROTEIN_BREAKFAST"
	ScenarioLowProteinLunch     ScenarioID = "LOW_PROTEIN_LUNCH"
	ScenarioLowProteinDinner    ScenarioID = "LOW_PROTEIN_DINNER"
	ScenarioLowProteinSnack     ScenarioID = "LOW_PROTEIN_SNACK"
	ScenarioMediumProtein       ScenarioID = "MEDIUM_PROTEIN"
	ScenarioHighProtein         ScenarioID = "HIGH_PROTEIN"
)

type Focus string

const (
	FocusProtein Focus = "protein"
	FocusBalance Focus = "balance"
	FocusSnack   Focus = "snack"
	FocusPortion Focus = "portion"
)

// Submission is one client request to log and analyze a meal.
// SessionID, Date and PhotoPath are mandatory.
type Submission struct {
	SessionID string `json:"session_id"`
	Date      string `json:"date"`
	MealText  string `json:"meal_text"`
	MealType  string `json:"meal_type"`
	PhotoPath string `json:"photo_path"`
}

// Meal is persisted before the inference call, so a failed analysis
// still leaves a visible record of the submission.
type Meal struct {
	ID        string
	SessionID string
	Date      string
	MealType  string
	MealText  string
	PhotoKey  string
	CreatedAt time.Time
}

// Analysis is written exactly once per meal, after validation.
type Analysis struct {
	ID            string
	MealID        string
	ProteinGrams  int
	Confidence    Confidence
	Notes         string
	MealSummary   string
	FatRisk       Risk
	FibreRisk     Risk
	CarbType      CarbType
	ScenarioID    ScenarioID
	FiveMinFix    string
	NextTimeTweak string
	Reason        string
	CreatedAt     time.Time
}

// CoachingTriple is the three bounded coaching strings shown to the user.
type CoachingTriple struct {
	FiveMinFix    string `json:"five_min_fix"`
	NextTimeTweak string `json:"next_time_tweak"`
	Reason        string `json:"reason"`
}

func (c CoachingTriple) complete() bool {
	return c.FiveMinFix != "" && c.NextTimeTweak != "" && c.Reason != ""
}

// ValidatedAnalysis is the strict in-range record produced from the
// model's raw output. Nothing outside the validator reads the raw form.
type ValidatedAnalysis struct {
	ProteinGrams int
	Confidence   Confidence
	Notes        string
	MealSummary  string
	FatRisk      Risk
	FibreRisk    Risk
	CarbType     CarbType
	Coaching     CoachingTriple
}

// --------------------------------------------------
// RESPONSE SHAPES
// --------------------------------------------------

type Estimate struct {
	ProteinGrams int        `json:"protein_grams"`
	Confidence   Confidence `json:"confidence"`
	Notes        string     `json:"notes"`
}

type CoachingResult struct {
	ScenarioID    ScenarioID `json:"scenario_id"`
	Focus         Focus      `json:"focus"`
	FiveMinFix    string     `json:"five_min_fix"`
	NextTimeTweak string     `json:"next_time_tweak"`
	Reason        string     `json:"reason"`
}

type DailySummary struct {
	Date         string  `json:"date"`
	ProteinTotal float64 `json:"protein_total"`
	ProteinGoal  float64 `json:"protein_goal"`
	Remaining    float64 `json:"remaining"`
}

// AnalysisResult is the unified success response for one submission.
type AnalysisResult struct {
	Success  bool           `json:"success"`
	MealID   string         `json:"meal_id"`
	Estimate Estimate       `json:"estimate"`
	Coaching CoachingResult `json:"coaching"`
	Daily    DailySummary   `json:"daily"`
}

// LoggedMeal is the day-view row returned by the meal listing.
type LoggedMeal struct {
	MealID       string     `json:"meal_id"`
	MealType     string     `json:"meal_type,omitempty"`
	MealText     string     `json:"meal_text,omitempty"`
	ProteinGrams int        `json:"protein_grams"`
	Confidence   Confidence `json:"confidence"`
	MealSummary  string     `json:"meal_summary,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
