package meal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field length caps for text coming back from the model.
const (
	maxNotesLen    = 300
	maxSummaryLen  = 140
	maxCoachingLen = 220
)

// Protein estimates outside this range mean the primary signal is
// untrustworthy, so the whole analysis is rejected rather than clamped.
const (
	minProteinGrams = 0
	maxProteinGrams = 500
)

type rawCoaching struct {
	FiveMinFix    string `json:"five_min_fix"`
	NextTimeTweak string `json:"next_time_tweak"`
	Reason        string `json:"reason"`
}

type rawAnalysis struct {
	ProteinGrams any         `json:"protein_grams"`
	Confidence   string      `json:"confidence"`
	Notes        string      `json:"notes"`
	MealSummary  string      `json:"meal_summary"`
	FatRisk      string      `json:"fat_risk"`
	FibreRisk    string      `json:"fibre_risk"`
	CarbType     string      `json:"carb_type"`
	Coaching     rawCoaching `json:"coaching"`
}

// ValidateAnalysis is the single narrowing boundary between the model's
// untrusted output and the rest of the pipeline. Every field is coerced
// into its permitted domain; only an unparseable document or an
// out-of-range protein estimate is fatal.
func ValidateAnalysis(raw string) (*ValidatedAnalysis, error) {
	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, raw)
	}

	protein, ok := coerceNumber(parsed.ProteinGrams)
	if !ok || math.IsNaN(protein) || math.IsInf(protein, 0) ||
		protein < minProteinGrams || protein > maxProteinGrams {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProtein, parsed.ProteinGrams)
	}

	return &ValidatedAnalysis{
		ProteinGrams: int(math.Round(protein)),
		Confidence:   coerceConfidence(parsed.Confidence),
		Notes:        clampText(parsed.Notes, maxNotesLen),
		MealSummary:  clampText(parsed.MealSummary, maxSummaryLen),
		FatRisk:      coerceRisk(parsed.FatRisk),
		FibreRisk:    coerceRisk(parsed.FibreRisk),
		CarbType:     coerceCarbType(parsed.CarbType),
		Coaching: CoachingTriple{
			FiveMinFix:    clampText(parsed.Coaching.FiveMinFix, maxCoachingLen),
			NextTimeTweak: clampText(parsed.Coaching.NextTimeTweak, maxCoachingLen),
			Reason:        clampText(parsed.Coaching.Reason, maxCoachingLen),
		},
	}, nil
}

func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Unrecognized confidence degrades to medium rather than failing;
// downstream logic already has a safe path for uncertain estimates.
func coerceConfidence(s string) Confidence {
	switch Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceLow:
		return ConfidenceLow
	case ConfidenceHigh:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

func coerceRisk(s string) Risk {
	switch Risk(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskHigh:
		return RiskHigh
	default:
		return RiskMedium
	}
}

func coerceCarbType(s string) CarbType {
	switch CarbType(strings.ToLower(strings.TrimSpace(s))) {
	case CarbLow:
		return CarbLow
	case CarbRefinedHeavy:
		return CarbRefinedHeavy
	default:
		return CarbMixed
	}
}

// clampText collapses whitespace runs, trims, and truncates to max runes
// with an ellipsis marker so a misbehaving model can't blow up storage.
func clampText(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
