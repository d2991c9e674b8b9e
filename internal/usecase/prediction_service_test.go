package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/platform/logging"
)

func newPredictionFixture(kickoffIn time.Duration, status string) (*PredictionService, *stubPredictionRepository, time.Time) {
	now := time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)
	matches := &stubMatchRepository{byPool: map[string][]match.Match{
		"p1": {{
			ID:         "m1",
			PoolID:     "p1",
			HomeTeamID: "t1",
			AwayTeamID: "t2",
			KickoffAt:  now.Add(kickoffIn),
			Status:     status,
		}},
	}}
	participants := &stubParticipantRepository{byKey: map[string]participant.Participant{
		participantKey("p1", "user-2"): {PoolID: "p1", UserID: "user-2"},
	}}
	predictions := &stubPredictionRepository{}
	service := NewPredictionService(ownedPoolRepo(), matches, participants, predictions, logging.NewNop())
	service.now = func() time.Time { return now }
	return service, predictions, now
}

func TestPredictionService_Save_UpsertsWhileOpen(t *testing.T) {
	t.Parallel()

	service, predictions, _ := newPredictionFixture(2*time.Hour, match.StatusScheduled)

	got, err := service.Save(context.Background(), SavePredictionInput{
		ActorUserID: "user-2",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   2,
		AwayScore:   1,
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if got.HomeScore != 2 || got.AwayScore != 1 {
		t.Fatalf("unexpected prediction: %+v", got)
	}

	// Saving again replaces the previous guess in place.
	if _, err := service.Save(context.Background(), SavePredictionInput{
		ActorUserID: "user-2",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   0,
		AwayScore:   0,
	}); err != nil {
		t.Fatalf("second Save error: %v", err)
	}
	stored, ok, err := predictions.GetByUserAndMatch(context.Background(), "p1", "user-2", "m1")
	if err != nil || !ok {
		t.Fatalf("stored prediction missing: ok=%v err=%v", ok, err)
	}
	if stored.HomeScore != 0 || stored.AwayScore != 0 {
		t.Fatalf("upsert did not replace: %+v", stored)
	}
}

func TestPredictionService_Save_ClosedWindows(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		kickoffIn time.Duration
		status    string
	}{
		{name: "inside cutoff", kickoffIn: 20 * time.Minute, status: match.StatusScheduled},
		{name: "exactly at cutoff", kickoffIn: match.PredictionCutoff, status: match.StatusScheduled},
		{name: "live match", kickoffIn: 2 * time.Hour, status: match.StatusLive},
		{name: "finished match", kickoffIn: -2 * time.Hour, status: match.StatusFinished},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			service, _, _ := newPredictionFixture(tc.kickoffIn, tc.status)
			_, err := service.Save(context.Background(), SavePredictionInput{
				ActorUserID: "user-2",
				PoolID:      "p1",
				MatchID:     "m1",
				HomeScore:   1,
				AwayScore:   0,
			})
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPredictionService_Save_ParticipantsOnly(t *testing.T) {
	t.Parallel()

	service, _, _ := newPredictionFixture(2*time.Hour, match.StatusScheduled)

	_, err := service.Save(context.Background(), SavePredictionInput{
		ActorUserID: "user-9",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   1,
		AwayScore:   0,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPredictionService_Save_RejectsNegativeScores(t *testing.T) {
	t.Parallel()

	service, _, _ := newPredictionFixture(2*time.Hour, match.StatusScheduled)

	_, err := service.Save(context.Background(), SavePredictionInput{
		ActorUserID: "user-2",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   -1,
		AwayScore:   0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPredictionService_ListByMatch_HiddenWhileOpen(t *testing.T) {
	t.Parallel()

	service, predictions, now := newPredictionFixture(2*time.Hour, match.StatusScheduled)
	_ = predictions.Upsert(context.Background(), mustPrediction("p1", "user-2", "m1", 2, 1, now))

	if _, err := service.ListByMatch(context.Background(), "p1", "m1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden while open, got %v", err)
	}
}

func TestPredictionService_ListByMatch_VisibleAfterCutoff(t *testing.T) {
	t.Parallel()

	service, predictions, now := newPredictionFixture(10*time.Minute, match.StatusScheduled)
	_ = predictions.Upsert(context.Background(), mustPrediction("p1", "user-2", "m1", 2, 1, now))

	got, err := service.ListByMatch(context.Background(), "p1", "m1")
	if err != nil {
		t.Fatalf("ListByMatch error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(got))
	}
}

func TestPredictionService_ListMine(t *testing.T) {
	t.Parallel()

	service, predictions, now := newPredictionFixture(2*time.Hour, match.StatusScheduled)
	_ = predictions.Upsert(context.Background(), mustPrediction("p1", "user-2", "m1", 2, 1, now))
	_ = predictions.Upsert(context.Background(), mustPrediction("p1", "user-9", "m1", 0, 0, now))

	got, err := service.ListMine(context.Background(), "p1", "user-2")
	if err != nil {
		t.Fatalf("ListMine error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "user-2" {
		t.Fatalf("unexpected predictions: %+v", got)
	}
}

func mustPrediction(poolID, userID, matchID string, home, away int, at time.Time) prediction.Prediction {
	return prediction.Prediction{
		PoolID:      poolID,
		UserID:      userID,
		MatchID:     matchID,
		HomeScore:   home,
		AwayScore:   away,
		PredictedAt: at,
	}
}
