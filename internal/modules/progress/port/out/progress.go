package out

import (
	"context"
	"time"

	"ecoscan/internal/modules/progress/domain"
)

// Tally is the per-material aggregate kept by a DetectionProjector.
type Tally struct {
	Material string
	Count    int
	CO2Saved float64
}

// DetectionProjector maintains an uncapped read model of recorded detections.
type DetectionProjector interface {
	Project(ctx context.Context, detection domain.Detection) error
	Tallies(ctx context.Context, since time.Time) ([]Tally, error)
}
