package domain_test

import (
	"testing"
	"time"

	"ecoscan/internal/modules/rewards/domain"
)

func byID[T any](t *testing.T, items []T, id func(T) string, want string) T {
	t.Helper()
	for _, item := range items {
		if id(item) == want {
			return item
		}
	}
	t.Fatalf("missing %s", want)
	var zero T
	return zero
}

func achievementID(a domain.Achievement) string { return a.ID }

func TestAchievementsFreshProfile(t *testing.T) {
	t.Parallel()
	got := domain.Achievements(domain.Stats{Streak: 3, Rank: 5})
	if len(got) != 6 {
		t.Fatalf("expected 6 achievements, got %d", len(got))
	}
	for _, a := range got {
		if a.Unlocked {
			t.Fatalf("nothing should be unlocked on a fresh profile: %+v", a)
		}
	}
	streak := byID(t, got, achievementID, "week-streak")
	if streak.Progress != 3 || streak.Target != 7 || streak.Category != domain.CategoryStreak {
		t.Fatalf("unexpected streak achievement %+v", streak)
	}
}

func TestAchievementsUnlock(t *testing.T) {
	t.Parallel()
	got := domain.Achievements(domain.Stats{Detections: 50, TotalCO2: 120, Streak: 7, Rank: 2})
	for _, id := range []string{"first-scan", "eco-warrior", "carbon-crusher", "week-streak", "top-10"} {
		if a := byID(t, got, achievementID, id); !a.Unlocked {
			t.Fatalf("expected %s unlocked, got %+v", id, a)
		}
	}
	planet := byID(t, got, achievementID, "planet-saver")
	if planet.Unlocked || planet.Progress != 120 || planet.Percent() >= 100 {
		t.Fatalf("unexpected planet-saver %+v percent %v", planet, planet.Percent())
	}
}

func TestTopTenNeedsRankWithinTen(t *testing.T) {
	t.Parallel()
	got := domain.Achievements(domain.Stats{TotalCO2: 5, Rank: 11})
	if byID(t, got, achievementID, "top-10").Unlocked {
		t.Fatalf("rank 11 must not unlock top-10")
	}
}

func TestDailyChallenges(t *testing.T) {
	t.Parallel()
	expires := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	got := domain.DailyChallenges(domain.Today{ItemsByCategory: map[string]int{"Plastic": 7, "Metal": 1}, CO2Saved: 3.5}, expires)
	if len(got) != 3 {
		t.Fatalf("expected 3 challenges, got %d", len(got))
	}
	id := func(c domain.Challenge) string { return c.ID }
	plastic := byID(t, got, id, "daily-1")
	if !plastic.Completed || plastic.Progress != 5 || plastic.Reward != 50 {
		t.Fatalf("unexpected plastic challenge %+v", plastic)
	}
	metal := byID(t, got, id, "daily-2")
	if metal.Completed || metal.Progress != 1 || metal.Target != 3 {
		t.Fatalf("unexpected metal challenge %+v", metal)
	}
	co2 := byID(t, got, id, "daily-3")
	if co2.Completed || co2.Progress != 3.5 || !co2.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected co2 challenge %+v", co2)
	}
}

func TestRankTiesFavourUser(t *testing.T) {
	t.Parallel()
	rivals := []domain.Entry{
		{Name: "GreenWarrior", CO2Saved: 847},
		{Name: "PlanetSaver", CO2Saved: 623},
		{Name: "RecycleKing", CO2Saved: 512},
		{Name: "EarthGuardian", CO2Saved: 389},
	}
	got := domain.Rank(domain.Entry{Name: "EcoChampion", CO2Saved: 623}, rivals)
	if got[1].Name != "EcoChampion" || got[1].Rank != 2 || !got[1].IsUser {
		t.Fatalf("expected user to win the tie at rank 2, got %+v", got)
	}
	if got[2].Name != "PlanetSaver" || got[2].Rank != 3 {
		t.Fatalf("unexpected rank 3 %+v", got[2])
	}
	if domain.UserRank(got) != 2 {
		t.Fatalf("unexpected user rank %d", domain.UserRank(got))
	}

	fresh := domain.Rank(domain.Entry{Name: "EcoChampion"}, rivals)
	if fresh[len(fresh)-1].Name != "EcoChampion" || fresh[len(fresh)-1].Rank != 5 {
		t.Fatalf("fresh user should be last, got %+v", fresh)
	}
}
