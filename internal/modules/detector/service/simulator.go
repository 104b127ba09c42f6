package service

import (
	"ecoscan/internal/modules/detector/domain"
	detectorout "ecoscan/internal/modules/detector/port/out"
)

// Simulator fabricates readings from the catalog.
type Simulator struct {
	rand       detectorout.Random
	confidence detectorout.ConfidenceRange
}

func NewSimulator(rand detectorout.Random, confidence detectorout.ConfidenceRange) *Simulator {
	return &Simulator{rand: rand, confidence: confidence}
}

// Next picks a uniformly random catalog material.
func (s *Simulator) Next() domain.Reading {
	return s.For(domain.Catalog[s.rand.IntN(len(domain.Catalog))])
}

// For reports material with a simulated confidence.
func (s *Simulator) For(material domain.Material) domain.Reading {
	return domain.Reading{
		Material:   material.Name,
		Confidence: s.confidence.Min + s.rand.Float64()*s.confidence.Spread,
		CO2Saved:   material.CO2Saved,
	}
}
