package in

import (
	"context"

	"ecoscan/internal/modules/recycling/dto"
)

type Usecase interface {
	// List returns the points accepting any of materials; empty means all.
	List(ctx context.Context, materials []string) ([]dto.PointOutput, error)
	Get(ctx context.Context, id string) (dto.PointOutput, error)
	Nearest(ctx context.Context, input dto.NearestInput) (dto.NearestOutput, error)
}
