package out

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"ecoscan/internal/modules/rewards/domain"
	rewardsout "ecoscan/internal/modules/rewards/port/out"
)

//go:embed fixtures/leaderboard.yaml
var leaderboardYAML []byte

type rivalFile struct {
	Rivals []struct {
		ID       string  `yaml:"id"`
		Name     string  `yaml:"name"`
		Avatar   string  `yaml:"avatar"`
		CO2Saved float64 `yaml:"co2_saved"`
	} `yaml:"rivals"`
}

// EmbeddedRivalStore serves the static leaderboard shipped with the binary.
type EmbeddedRivalStore struct {
	rivals []domain.Entry
}

var _ rewardsout.RivalStore = (*EmbeddedRivalStore)(nil)

func NewEmbeddedRivalStore() (*EmbeddedRivalStore, error) {
	return parseRivals(leaderboardYAML)
}

func parseRivals(raw []byte) (*EmbeddedRivalStore, error) {
	var file rivalFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse leaderboard fixture: %w", err)
	}
	rivals := make([]domain.Entry, 0, len(file.Rivals))
	for _, r := range file.Rivals {
		if r.Name == "" {
			return nil, fmt.Errorf("leaderboard fixture: rival %q has no name", r.ID)
		}
		rivals = append(rivals, domain.Entry{ID: r.ID, Name: r.Name, Avatar: r.Avatar, CO2Saved: r.CO2Saved})
	}
	return &EmbeddedRivalStore{rivals: rivals}, nil
}

func (s *EmbeddedRivalStore) Rivals(context.Context) ([]domain.Entry, error) {
	out := make([]domain.Entry, len(s.rivals))
	copy(out, s.rivals)
	return out, nil
}
