package out

import (
	"context"

	"ecoscan/internal/modules/detector/domain"
)

// Random is the entropy used by the simulator.
type Random interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// ConfidenceRange is forwarded to plugins so they can honour configuration.
type ConfidenceRange struct {
	Min    float64
	Spread float64
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Detect(ctx context.Context, manifest domain.Manifest, confidence ConfidenceRange) (domain.Reading, error)
}
