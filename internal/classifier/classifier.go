package classifier

import (
	"context"
	"errors"

	"sentimentform/internal/domain"
)

// ErrNoResult is returned when the model answers without any label.
var ErrNoResult = errors.New("classifier returned no result")

// Classifier maps validated text to a sentiment label and confidence.
// Implementations are treated as deterministic for a given Model.
type Classifier interface {
	Classify(ctx context.Context, text string) (*domain.Sentiment, error)
	Model() string
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}
