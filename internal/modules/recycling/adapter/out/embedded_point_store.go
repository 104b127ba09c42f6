package out

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"ecoscan/internal/modules/recycling/domain"
	recyclingout "ecoscan/internal/modules/recycling/port/out"
)

//go:embed fixtures/points.yaml
var pointsYAML []byte

type pointFile struct {
	Points []struct {
		ID        string   `yaml:"id"`
		Name      string   `yaml:"name"`
		Lat       float64  `yaml:"lat"`
		Lng       float64  `yaml:"lng"`
		Materials []string `yaml:"materials"`
		Hours     string   `yaml:"hours"`
		Phone     string   `yaml:"phone"`
		Address   string   `yaml:"address"`
		Website   string   `yaml:"website"`
	} `yaml:"points"`
}

// EmbeddedPointStore serves the recycling points shipped with the binary.
type EmbeddedPointStore struct {
	points []domain.Point
}

var _ recyclingout.PointStore = (*EmbeddedPointStore)(nil)

func NewEmbeddedPointStore() (*EmbeddedPointStore, error) {
	return parsePoints(pointsYAML)
}

func parsePoints(raw []byte) (*EmbeddedPointStore, error) {
	var file pointFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse recycling points: %w", err)
	}
	seen := map[string]struct{}{}
	points := make([]domain.Point, 0, len(file.Points))
	for _, p := range file.Points {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("recycling point %q: id and name are required", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate recycling point id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		points = append(points, domain.Point{
			ID:        p.ID,
			Name:      p.Name,
			Lat:       p.Lat,
			Lng:       p.Lng,
			Materials: p.Materials,
			Hours:     p.Hours,
			Phone:     p.Phone,
			Address:   p.Address,
			Website:   p.Website,
		})
	}
	return &EmbeddedPointStore{points: points}, nil
}

func (s *EmbeddedPointStore) List(context.Context) ([]domain.Point, error) {
	out := make([]domain.Point, len(s.points))
	copy(out, s.points)
	return out, nil
}
