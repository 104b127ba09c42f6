package out

import (
	"context"

	"ecoscan/internal/modules/rewards/domain"
)

// RivalStore supplies the other leaderboard entries.
type RivalStore interface {
	Rivals(ctx context.Context) ([]domain.Entry, error)
}

// CategoryResolver maps a material name to its category.
type CategoryResolver interface {
	CategoryOf(ctx context.Context, material string) (string, bool, error)
}
