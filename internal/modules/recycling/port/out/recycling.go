package out

import (
	"context"

	"ecoscan/internal/modules/recycling/domain"
)

type PointStore interface {
	List(ctx context.Context) ([]domain.Point, error)
}
