package in

import (
	"context"

	"ecoscan/internal/modules/detector/dto"
)

type Usecase interface {
	// Scan draws a reading from the active source and records it.
	Scan(ctx context.Context) (dto.ScanOutput, error)
	// ScanMaterial records a simulated reading of a named catalog material.
	ScanMaterial(ctx context.Context, name string) (dto.ScanOutput, error)
	Catalog(ctx context.Context) ([]dto.MaterialOutput, error)
	Doctor(ctx context.Context) (dto.DoctorResult, error)
}
