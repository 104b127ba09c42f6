package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	progressin "ecoscan/internal/modules/progress/port/in"
	"ecoscan/internal/modules/rewards/domain"
	"ecoscan/internal/modules/rewards/dto"
	rewardsin "ecoscan/internal/modules/rewards/port/in"
	rewardsout "ecoscan/internal/modules/rewards/port/out"
	"ecoscan/internal/platform/clock"
	"ecoscan/internal/platform/logging"
)

type Interactor struct {
	progress   progressin.Usecase
	rivals     rewardsout.RivalStore
	categories rewardsout.CategoryResolver
	clock      clock.Clock
	userName   string
	logger     *slog.Logger
}

func NewInteractor(progress progressin.Usecase, rivals rewardsout.RivalStore, categories rewardsout.CategoryResolver, clk clock.Clock, userName string, logger *slog.Logger) rewardsin.Usecase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interactor{
		progress:   progress,
		rivals:     rivals,
		categories: categories,
		clock:      clk,
		userName:   userName,
		logger:     logger.With("component", "rewards"),
	}
}

func (i *Interactor) Achievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	board, err := i.board(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := i.stats(ctx, domain.UserRank(board))
	if err != nil {
		return nil, err
	}
	return toAchievementOutputs(domain.Achievements(stats)), nil
}

func (i *Interactor) DailyChallenges(ctx context.Context) ([]dto.ChallengeOutput, error) {
	now := i.clock.Now()
	midnight := clock.StartOfDay(now)
	tallies, err := i.progress.Tallies(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("today's tallies: %w", err)
	}
	today := domain.Today{ItemsByCategory: map[string]int{}}
	for _, t := range tallies {
		today.CO2Saved += t.CO2Saved
		category, ok, err := i.categories.CategoryOf(ctx, t.Material)
		if err != nil {
			return nil, fmt.Errorf("resolve category of %s: %w", t.Material, err)
		}
		if !ok {
			i.logger.Debug("material without category", "material", t.Material)
			continue
		}
		today.ItemsByCategory[category] += t.Count
	}
	expires := midnight.AddDate(0, 0, 1)
	return toChallengeOutputs(domain.DailyChallenges(today, expires)), nil
}

func (i *Interactor) Leaderboard(ctx context.Context) ([]dto.LeaderboardEntryOutput, error) {
	board, err := i.board(ctx)
	if err != nil {
		return nil, err
	}
	return toLeaderboardOutputs(board), nil
}

func (i *Interactor) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	board, err := i.board(ctx)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	rank := domain.UserRank(board)
	stats, err := i.stats(ctx, rank)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	challenges, err := i.DailyChallenges(ctx)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	achievements := toAchievementOutputs(domain.Achievements(stats))
	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	return dto.OverviewOutput{
		Achievements: achievements,
		Unlocked:     unlocked,
		Challenges:   challenges,
		Leaderboard:  toLeaderboardOutputs(board),
		UserRank:     rank,
	}, nil
}

func (i *Interactor) board(ctx context.Context) ([]domain.Entry, error) {
	snap, err := i.progress.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("progress snapshot: %w", err)
	}
	rivals, err := i.rivals.Rivals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rivals: %w", err)
	}
	user := domain.Entry{ID: "1", Name: i.userName, Avatar: "🌟", CO2Saved: snap.TotalCO2Saved}
	return domain.Rank(user, rivals), nil
}

// stats counts detections over the uncapped tally projection rather than the
// capped log, so achievements past 50 items remain reachable.
func (i *Interactor) stats(ctx context.Context, rank int) (domain.Stats, error) {
	snap, err := i.progress.Snapshot(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("progress snapshot: %w", err)
	}
	tallies, err := i.progress.Tallies(ctx, time.Time{})
	if err != nil {
		return domain.Stats{}, fmt.Errorf("lifetime tallies: %w", err)
	}
	count := 0
	for _, t := range tallies {
		count += t.Count
	}
	return domain.Stats{Detections: count, TotalCO2: snap.TotalCO2Saved, Streak: snap.Streak, Rank: rank}, nil
}

func toAchievementOutputs(in []domain.Achievement) []dto.AchievementOutput {
	out := make([]dto.AchievementOutput, 0, len(in))
	for _, a := range in {
		out = append(out, dto.AchievementOutput{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Category:    string(a.Category),
			Progress:    a.Progress,
			Target:      a.Target,
			Percent:     a.Percent(),
			Unlocked:    a.Unlocked,
		})
	}
	return out
}

func toChallengeOutputs(in []domain.Challenge) []dto.ChallengeOutput {
	out := make([]dto.ChallengeOutput, 0, len(in))
	for _, c := range in {
		out = append(out, dto.ChallengeOutput{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Icon:        c.Icon,
			Progress:    c.Progress,
			Target:      c.Target,
			Reward:      c.Reward,
			Completed:   c.Completed,
			ExpiresAt:   c.ExpiresAt,
		})
	}
	return out
}

func toLeaderboardOutputs(in []domain.Entry) []dto.LeaderboardEntryOutput {
	out := make([]dto.LeaderboardEntryOutput, 0, len(in))
	for _, e := range in {
		out = append(out, dto.LeaderboardEntryOutput{Rank: e.Rank, Name: e.Name, Avatar: e.Avatar, CO2Saved: e.CO2Saved, IsUser: e.IsUser})
	}
	return out
}
