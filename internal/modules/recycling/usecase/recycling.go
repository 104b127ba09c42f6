package usecase

import (
	"context"
	"fmt"

	"ecoscan/internal/modules/recycling/domain"
	"ecoscan/internal/modules/recycling/dto"
	recyclingin "ecoscan/internal/modules/recycling/port/in"
	"ecoscan/internal/modules/recycling/service"
	apperrors "ecoscan/internal/platform/errors"
)

type Interactor struct {
	svc *service.RecyclingService
}

func NewInteractor(svc *service.RecyclingService) recyclingin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context, materials []string) ([]dto.PointOutput, error) {
	points, err := i.svc.List(ctx, materials)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PointOutput, 0, len(points))
	for _, p := range points {
		out = append(out, toPointOutput(p))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.PointOutput, error) {
	p, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.PointOutput{}, err
	}
	return toPointOutput(p), nil
}

func (i *Interactor) Nearest(ctx context.Context, input dto.NearestInput) (dto.NearestOutput, error) {
	if input.Lat < -90 || input.Lat > 90 || input.Lng < -180 || input.Lng > 180 {
		return dto.NearestOutput{}, fmt.Errorf("%w: coordinates %.4f,%.4f out of range", apperrors.ErrInvalidInput, input.Lat, input.Lng)
	}
	p, d, err := i.svc.Nearest(ctx, input.Lat, input.Lng, input.Materials)
	if err != nil {
		return dto.NearestOutput{}, err
	}
	return dto.NearestOutput{Point: toPointOutput(p), DistanceKm: d}, nil
}

func toPointOutput(p domain.Point) dto.PointOutput {
	return dto.PointOutput{
		ID:        p.ID,
		Name:      p.Name,
		Lat:       p.Lat,
		Lng:       p.Lng,
		Materials: append([]string(nil), p.Materials...),
		Hours:     p.Hours,
		Phone:     p.Phone,
		Address:   p.Address,
		Website:   p.Website,
	}
}
