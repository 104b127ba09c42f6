package in

import (
	"context"

	"ecoscan/internal/modules/detector/dto"
	detectorin "ecoscan/internal/modules/detector/port/in"
)

type CLIHandler struct {
	usecase detectorin.Usecase
}

func NewCLIHandler(usecase detectorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Detect scans once, or once for material when it is non-empty.
func (h CLIHandler) Detect(ctx context.Context, material string) (dto.ScanOutput, error) {
	if material != "" {
		return h.usecase.ScanMaterial(ctx, material)
	}
	return h.usecase.Scan(ctx)
}

func (h CLIHandler) Catalog(ctx context.Context) ([]dto.MaterialOutput, error) {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) (dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
