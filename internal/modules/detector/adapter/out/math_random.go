package out

import (
	"math/rand"

	detectorout "ecoscan/internal/modules/detector/port/out"
)

// MathRandom draws from the runtime's auto-seeded generator.
type MathRandom struct{}

var _ detectorout.Random = MathRandom{}

func (MathRandom) Float64() float64 { return rand.Float64() }

func (MathRandom) IntN(n int) int { return rand.Intn(n) }
