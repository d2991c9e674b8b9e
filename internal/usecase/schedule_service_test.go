package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/team"
	"github.com/penca-app/penca-api/internal/platform/logging"
)

func newScheduleService(pools *stubPoolRepository, teams *stubTeamRepository, divisionals *stubDivisionalRepository, matchdays *stubMatchdayRepository, matches *stubMatchRepository) *ScheduleService {
	return NewScheduleService(pools, teams, divisionals, matchdays, matches, &stubIDGenerator{}, logging.NewNop())
}

func ownedPoolRepo() *stubPoolRepository {
	return &stubPoolRepository{byID: map[string]pool.Pool{
		"p1": {ID: "p1", Name: "Mundial", OwnerUserID: "user-1", Status: pool.StatusActive},
	}}
}

func TestScheduleService_CreateTeam_OwnerOnly(t *testing.T) {
	t.Parallel()

	teams := &stubTeamRepository{}
	service := newScheduleService(ownedPoolRepo(), teams, &stubDivisionalRepository{}, &stubMatchdayRepository{}, &stubMatchRepository{})

	if _, err := service.CreateTeam(context.Background(), SaveTeamInput{ActorUserID: "user-2", PoolID: "p1", Name: "Uruguay"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	got, err := service.CreateTeam(context.Background(), SaveTeamInput{ActorUserID: "user-1", PoolID: "p1", Name: "  Uruguay  "})
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if got.Name != "Uruguay" {
		t.Fatalf("name = %q, want Uruguay", got.Name)
	}
	if len(teams.byPool["p1"]) != 1 {
		t.Fatalf("expected 1 persisted team, got %d", len(teams.byPool["p1"]))
	}
}

func TestScheduleService_CreateTeam_UnknownDivisional(t *testing.T) {
	t.Parallel()

	service := newScheduleService(ownedPoolRepo(), &stubTeamRepository{}, &stubDivisionalRepository{}, &stubMatchdayRepository{}, &stubMatchRepository{})

	_, err := service.CreateTeam(context.Background(), SaveTeamInput{
		ActorUserID:  "user-1",
		PoolID:       "p1",
		Name:         "Uruguay",
		DivisionalID: "missing",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScheduleService_CreateMatchday_RejectsNonPositiveNumber(t *testing.T) {
	t.Parallel()

	service := newScheduleService(ownedPoolRepo(), &stubTeamRepository{}, &stubDivisionalRepository{}, &stubMatchdayRepository{}, &stubMatchRepository{})

	if _, err := service.CreateMatchday(context.Background(), SaveMatchdayInput{ActorUserID: "user-1", PoolID: "p1", Number: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func scheduledMatchFixture() (*stubTeamRepository, *stubMatchRepository) {
	teams := &stubTeamRepository{byPool: map[string][]team.Team{
		"p1": {
			{ID: "t1", PoolID: "p1", Name: "Uruguay"},
			{ID: "t2", PoolID: "p1", Name: "Brasil"},
		},
	}}
	matches := &stubMatchRepository{}
	return teams, matches
}

func TestScheduleService_CreateMatch_StartsScheduled(t *testing.T) {
	t.Parallel()

	teams, matches := scheduledMatchFixture()
	service := newScheduleService(ownedPoolRepo(), teams, &stubDivisionalRepository{}, &stubMatchdayRepository{}, matches)

	kickoff := time.Date(2026, 6, 11, 19, 0, 0, 0, time.UTC)
	got, err := service.CreateMatch(context.Background(), SaveMatchInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		HomeTeamID:  "t1",
		AwayTeamID:  "t2",
		KickoffAt:   kickoff,
	})
	if err != nil {
		t.Fatalf("CreateMatch error: %v", err)
	}
	if got.Status != match.StatusScheduled {
		t.Fatalf("status = %q, want %q", got.Status, match.StatusScheduled)
	}
	if !got.KickoffAt.Equal(kickoff) {
		t.Fatalf("kickoff = %v, want %v", got.KickoffAt, kickoff)
	}
}

func TestScheduleService_CreateMatch_Validation(t *testing.T) {
	t.Parallel()

	teams, matches := scheduledMatchFixture()
	service := newScheduleService(ownedPoolRepo(), teams, &stubDivisionalRepository{}, &stubMatchdayRepository{}, matches)

	kickoff := time.Date(2026, 6, 11, 19, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input SaveMatchInput
	}{
		{
			name:  "same team twice",
			input: SaveMatchInput{ActorUserID: "user-1", PoolID: "p1", HomeTeamID: "t1", AwayTeamID: "t1", KickoffAt: kickoff},
		},
		{
			name:  "missing kickoff",
			input: SaveMatchInput{ActorUserID: "user-1", PoolID: "p1", HomeTeamID: "t1", AwayTeamID: "t2"},
		},
		{
			name:  "foreign team",
			input: SaveMatchInput{ActorUserID: "user-1", PoolID: "p1", HomeTeamID: "t1", AwayTeamID: "t9", KickoffAt: kickoff},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := service.CreateMatch(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestScheduleService_UpdateMatch_OnlyWhileScheduled(t *testing.T) {
	t.Parallel()

	teams, _ := scheduledMatchFixture()
	matches := &stubMatchRepository{byPool: map[string][]match.Match{
		"p1": {{ID: "m1", PoolID: "p1", HomeTeamID: "t1", AwayTeamID: "t2", Status: match.StatusLive}},
	}}
	service := newScheduleService(ownedPoolRepo(), teams, &stubDivisionalRepository{}, &stubMatchdayRepository{}, matches)

	_, err := service.UpdateMatch(context.Background(), SaveMatchInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeTeamID:  "t1",
		AwayTeamID:  "t2",
		KickoffAt:   time.Date(2026, 6, 12, 19, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScheduleService_MarkMatchLive(t *testing.T) {
	t.Parallel()

	teams, _ := scheduledMatchFixture()
	matches := &stubMatchRepository{byPool: map[string][]match.Match{
		"p1": {{ID: "m1", PoolID: "p1", HomeTeamID: "t1", AwayTeamID: "t2", Status: match.StatusScheduled}},
	}}
	service := newScheduleService(ownedPoolRepo(), teams, &stubDivisionalRepository{}, &stubMatchdayRepository{}, matches)

	got, err := service.MarkMatchLive(context.Background(), "p1", "m1", "user-1")
	if err != nil {
		t.Fatalf("MarkMatchLive error: %v", err)
	}
	if got.Status != match.StatusLive {
		t.Fatalf("status = %q, want %q", got.Status, match.StatusLive)
	}

	if _, err := service.MarkMatchLive(context.Background(), "p1", "m1", "user-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on second call, got %v", err)
	}
}
