package llm

import (
	"context"
)

// AnalysisRequest carries everything the model needs for one meal.
// The image is primary evidence; MealText and MealType are hints only.
type AnalysisRequest struct {
	ImageData []byte
	ImageMIME string
	MealText  string
	MealType  string
}

type Client interface {
	AnalyzeMeal(ctx context.Context, req AnalysisRequest) (string, error)
}
