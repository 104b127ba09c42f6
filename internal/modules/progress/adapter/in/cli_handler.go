package in

import (
	"context"
	"time"

	"ecoscan/internal/modules/progress/dto"
	progressin "ecoscan/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, material string, confidence, co2Saved float64) (dto.RecordOutput, error) {
	return h.usecase.RecordDetection(ctx, dto.RecordInput{Material: material, Confidence: confidence, CO2Saved: co2Saved})
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Dismiss(ctx context.Context) error {
	return h.usecase.DismissMilestone(ctx)
}

func (h CLIHandler) Tallies(ctx context.Context, since time.Time) ([]dto.TallyOutput, error) {
	return h.usecase.Tallies(ctx, since)
}
