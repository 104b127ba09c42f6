package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ecoscan/internal/modules/detector/domain"
	"ecoscan/internal/modules/detector/dto"
	detectorout "ecoscan/internal/modules/detector/port/out"
	apperrors "ecoscan/internal/platform/errors"
	"ecoscan/internal/platform/logging"
)

// DetectorService picks the active reading source: the configured plugin when
// it is enabled, the simulator otherwise.
type DetectorService struct {
	sim        *Simulator
	manifest   domain.Manifest
	host       detectorout.Host
	confidence detectorout.ConfidenceRange
	logger     *slog.Logger
}

func NewDetectorService(sim *Simulator, manifest domain.Manifest, host detectorout.Host, confidence detectorout.ConfidenceRange, logger *slog.Logger) *DetectorService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DetectorService{
		sim:        sim,
		manifest:   manifest,
		host:       host,
		confidence: confidence,
		logger:     logger.With("component", "detector"),
	}
}

// Source names the active reading source.
func (s *DetectorService) Source() string {
	if s.pluginActive() {
		return "plugin:" + s.manifest.Name
	}
	return "simulator"
}

func (s *DetectorService) Next(ctx context.Context) (domain.Reading, error) {
	if !s.pluginActive() {
		return s.sim.Next(), nil
	}
	if err := s.manifest.Validate(); err != nil {
		return domain.Reading{}, fmt.Errorf("detector plugin manifest: %w", err)
	}
	if err := checksumMatches(s.manifest.Binary, s.manifest.SHA256); err != nil {
		return domain.Reading{}, err
	}
	reading, err := s.host.Detect(ctx, s.manifest, s.confidence)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("detector plugin %s: %w", s.manifest.Name, err)
	}
	if err := reading.Validate(); err != nil {
		s.logger.Warn("rejected plugin reading", "plugin", s.manifest.Name, "error", err)
		return domain.Reading{}, fmt.Errorf("%w: plugin reading: %v", apperrors.ErrInvalidInput, err)
	}
	material, _ := domain.Lookup(reading.Material)
	reading.Material = material.Name
	return reading, nil
}

// For simulates a reading of a named catalog material.
func (s *DetectorService) For(name string) (domain.Reading, error) {
	material, ok := domain.Lookup(name)
	if !ok {
		return domain.Reading{}, fmt.Errorf("%w: material %q", apperrors.ErrNotFound, name)
	}
	return s.sim.For(material), nil
}

func (s *DetectorService) Doctor(ctx context.Context) dto.DoctorResult {
	m := s.manifest
	result := dto.DoctorResult{Name: m.Name, Version: m.Version, Configured: m.Configured(), Enabled: m.Enabled}
	if !m.Configured() {
		return result
	}
	if err := m.Validate(); err != nil {
		result.Error = err.Error()
		return result
	}
	binaryOK := fileExists(m.Binary)
	result.BinaryReachable = binaryOK
	checksumOK := false
	if binaryOK {
		checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
	}
	result.ChecksumValid = checksumOK
	switch {
	case !binaryOK:
		result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
	case !checksumOK:
		result.Error = apperrors.ErrChecksumMismatch.Error()
	case !m.Enabled:
		result.Error = apperrors.ErrPluginDisabled.Error()
	case s.host != nil:
		meta, err := s.host.GetMetadata(ctx, m)
		if err != nil {
			result.Error = err.Error()
			break
		}
		result.LifecycleOK = true
		result.Materials = meta.Materials
		if meta.Name != m.Name {
			result.Error = fmt.Sprintf("plugin reports name %q, manifest says %q", meta.Name, m.Name)
		}
	}
	s.logger.Debug("doctor", "plugin", m.Name, "lifecycle_ok", result.LifecycleOK, "error", result.Error)
	return result
}

func (s *DetectorService) pluginActive() bool {
	return s.manifest.Configured() && s.manifest.Enabled && s.host != nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", apperrors.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
