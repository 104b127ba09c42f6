package service

import (
	"context"
	"fmt"

	"ecoscan/internal/modules/recycling/domain"
	recyclingout "ecoscan/internal/modules/recycling/port/out"
	apperrors "ecoscan/internal/platform/errors"
)

type RecyclingService struct {
	store recyclingout.PointStore
}

func NewRecyclingService(store recyclingout.PointStore) *RecyclingService {
	return &RecyclingService{store: store}
}

func (s *RecyclingService) List(ctx context.Context, materials []string) ([]domain.Point, error) {
	points, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recycling points: %w", err)
	}
	return domain.Filter(points, materials), nil
}

func (s *RecyclingService) Get(ctx context.Context, id string) (domain.Point, error) {
	points, err := s.store.List(ctx)
	if err != nil {
		return domain.Point{}, fmt.Errorf("load recycling points: %w", err)
	}
	for _, p := range points {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Point{}, fmt.Errorf("%w: recycling point %q", apperrors.ErrNotFound, id)
}

func (s *RecyclingService) Nearest(ctx context.Context, lat, lng float64, materials []string) (domain.Point, float64, error) {
	points, err := s.List(ctx, materials)
	if err != nil {
		return domain.Point{}, 0, err
	}
	p, d, ok := domain.Nearest(points, lat, lng)
	if !ok {
		return domain.Point{}, 0, fmt.Errorf("%w: no recycling point accepts %v", apperrors.ErrNotFound, materials)
	}
	return p, d, nil
}
