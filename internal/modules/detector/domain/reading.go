package domain

import (
	"fmt"
	"math"
	"regexp"
)

// MaxCO2Saved bounds a reported saving; progress rejects anything larger.
const MaxCO2Saved = 1e9

// Reading is one (material, confidence, co2Saved) tuple produced by a source.
type Reading struct {
	Material   string
	Confidence float64
	CO2Saved   float64
}

// Validate checks a reading that arrived from outside the process.
func (r Reading) Validate() error {
	if _, ok := Lookup(r.Material); !ok {
		return fmt.Errorf("unknown material %q", r.Material)
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", r.Confidence)
	}
	if math.IsNaN(r.CO2Saved) || math.IsInf(r.CO2Saved, 0) || r.CO2Saved < 0 {
		return fmt.Errorf("co2 saved %v must be a non-negative number", r.CO2Saved)
	}
	if r.CO2Saved > MaxCO2Saved {
		return fmt.Errorf("co2 saved %v exceeds %v kg", r.CO2Saved, MaxCO2Saved)
	}
	return nil
}

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes an external detector plugin binary.
type Manifest struct {
	Name    string
	Version string
	Binary  string
	SHA256  string
	Enabled bool
}

// Configured reports whether a plugin binary was named at all.
func (m Manifest) Configured() bool {
	return m.Binary != ""
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	return nil
}

// Metadata is what a running plugin reports about itself.
type Metadata struct {
	Name      string
	Version   string
	Materials []string
}
