package in

import (
	"context"

	"ecoscan/internal/modules/recycling/dto"
	recyclingin "ecoscan/internal/modules/recycling/port/in"
)

type CLIHandler struct {
	usecase recyclingin.Usecase
}

func NewCLIHandler(usecase recyclingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, materials []string) ([]dto.PointOutput, error) {
	return h.usecase.List(ctx, materials)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.PointOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Nearest(ctx context.Context, lat, lng float64, materials []string) (dto.NearestOutput, error) {
	return h.usecase.Nearest(ctx, dto.NearestInput{Lat: lat, Lng: lng, Materials: materials})
}
