package in

import (
	"context"

	"ecoscan/internal/modules/rewards/dto"
)

type Usecase interface {
	Achievements(ctx context.Context) ([]dto.AchievementOutput, error)
	DailyChallenges(ctx context.Context) ([]dto.ChallengeOutput, error)
	Leaderboard(ctx context.Context) ([]dto.LeaderboardEntryOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
}
