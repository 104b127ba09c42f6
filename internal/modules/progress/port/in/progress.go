package in

import (
	"context"
	"time"

	"ecoscan/internal/modules/progress/dto"
)

type Usecase interface {
	RecordDetection(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	DismissMilestone(ctx context.Context) error
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
	// Tallies aggregates every detection recorded at or after since, by material.
	Tallies(ctx context.Context, since time.Time) ([]dto.TallyOutput, error)
}
