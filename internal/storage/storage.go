package storage

import (
	"context"

	"sentimentform/internal/domain"
)

// AnalysisRepository records completed analyses. FindByID returns (nil, nil)
// when the ID is unknown.
type AnalysisRepository interface {
	Save(ctx context.Context, a domain.Analysis) error
	FindByID(ctx context.Context, id string) (*domain.Analysis, error)
	FindRecent(ctx context.Context, limit int) ([]domain.Analysis, error)
	Close() error
}
