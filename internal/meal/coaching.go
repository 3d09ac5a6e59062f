package meal

import (
	"fmt"
	"math"
	"strings"
)

// Protein thresholds in grams. Fixed design constants, not per-request.
const (
	mediumProteinThreshold = 20
	highProteinThreshold   = 35
)

// tweakLeadIn is the structural contract on model-provided coaching.
const tweakLeadIn = "Next time,"

// ClassifyScenario maps an estimate to its coaching scenario. Pure and
// total: low confidence or a broken number always wins, because coaching
// must not claim certainty it doesn't have.
func ClassifyScenario(protein float64, confidence Confidence, mealType string) (ScenarioID, Focus) {
	if confidence == ConfidenceLow || math.IsNaN(protein) || math.IsInf(protein, 0) {
		return ScenarioUnknownMeal, FocusProtein
	}

	switch {
	case protein >= highProteinThreshold:
		return ScenarioHighProtein, FocusProtein
	case protein >= mediumProteinThreshold:
		return ScenarioMediumProtein, FocusProtein
	}

	switch mealType {
	case TypeBreakfast:
		return ScenarioLowProteinBreakfast, FocusProtein
	case TypeLunch:
		return ScenarioLowProteinLunch, FocusProtein
	case TypeDinner:
		return ScenarioLowProteinDinner, FocusProtein
	case TypeSnack:
		return ScenarioLowProteinSnack, FocusSnack
	default:
		return ScenarioUnknownMeal, FocusProtein
	}
}

var fallbackCoaching = map[ScenarioID]CoachingTriple{
	ScenarioUnknownMeal: {
		FiveMinFix:    "Add a palm-sized portion of any protein you have on hand.",
		NextTimeTweak: "Next time, take the photo from directly above in good light so the whole plate is visible.",
		Reason:        "We couldn't read this meal clearly, so the safest move is a small protein top-up.",
	},
	ScenarioLowProteinBreakfast: {
		FiveMinFix:    "Add two boiled eggs or a cup of Greek yogurt on the side.",
		NextTimeTweak: "Next time, swap half of the toast or cereal for eggs or cottage cheese.",
		Reason:        "A protein-forward breakfast keeps you full until lunch instead of mid-morning.",
	},
	ScenarioLowProteinLunch: {
		FiveMinFix:    "Add a tin of tuna or a handful of leftover chicken to the plate.",
		NextTimeTweak: "Next time, build the plate around the chicken or beans first and add the rice after.",
		Reason:        "A protein-anchored lunch stops the afternoon energy dip before it starts.",
	},
	ScenarioLowProteinDinner: {
		FiveMinFix:    "Add a quick fried egg or a slice of cheese on top before you sit down.",
		NextTimeTweak: "Next time, double the meat or beans in the pan and halve the pasta.",
		Reason:        "Dinner is your last chance of the day to close the protein gap.",
	},
	ScenarioLowProteinSnack: {
		FiveMinFix:    "Swap half of this snack for a protein bar or a glass of milk.",
		NextTimeTweak: "Next time, pair the crackers with cheese or hummus instead of eating them alone.",
		Reason:        "Protein snacks hold you over far longer than carbs on their own.",
	},
	ScenarioMediumProtein: {
		FiveMinFix:    "Add one more small serving of the protein already on this plate.",
		NextTimeTweak: "Next time, cook an extra egg or an extra spoon of the beans alongside.",
		Reason:        "You're close to a strong meal; one small top-up gets you there.",
	},
}

// FallbackCoaching returns the canned triple for a scenario. It never
// fails and never calls out, so it is always safe to substitute for
// model coaching. The protein figure only feeds the high-protein reason.
func FallbackCoaching(scenario ScenarioID, proteinGrams int) CoachingTriple {
	if scenario == ScenarioHighProtein {
		return CoachingTriple{
			FiveMinFix:    "Skip any additions; this plate already does the job.",
			NextTimeTweak: "Next time, keep this exact protein portion and rotate the vegetables for variety.",
			Reason:        fmt.Sprintf("At roughly %dg of protein this meal carries its weight for the day.", proteinGrams),
		}
	}

	if triple, ok := fallbackCoaching[scenario]; ok {
		return triple
	}
	return fallbackCoaching[ScenarioUnknownMeal]
}

// acceptModelCoaching gates free-form model coaching behind a strict
// structural contract: it is trusted verbatim only when the estimate is
// not low-confidence, all three fields are present, and the future tweak
// carries the required lead-in.
func acceptModelCoaching(confidence Confidence, c CoachingTriple) bool {
	if confidence == ConfidenceLow {
		return false
	}
	if !c.complete() {
		return false
	}
	return strings.HasPrefix(c.NextTimeTweak, tweakLeadIn)
}
