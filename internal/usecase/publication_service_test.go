package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/domain/scoring"
	"github.com/penca-app/penca-api/internal/platform/logging"
)

type publicationFixture struct {
	service      *PublicationService
	matches      *stubMatchRepository
	participants *stubParticipantRepository
	awards       *stubAwardRepository
	now          time.Time
}

func newPublicationFixture(guesses []prediction.Prediction) *publicationFixture {
	now := time.Date(2026, 6, 11, 21, 0, 0, 0, time.UTC)
	pools := &stubPoolRepository{byID: map[string]pool.Pool{
		"p1": {ID: "p1", OwnerUserID: "user-1", Status: pool.StatusActive, Rules: scoring.DefaultRules()},
	}}
	matches := &stubMatchRepository{byPool: map[string][]match.Match{
		"p1": {{
			ID:         "m1",
			PoolID:     "p1",
			HomeTeamID: "t1",
			AwayTeamID: "t2",
			KickoffAt:  now.Add(-2 * time.Hour),
			Status:     match.StatusLive,
		}},
	}}
	participants := &stubParticipantRepository{byKey: map[string]participant.Participant{}}
	predictions := &stubPredictionRepository{}
	for _, guess := range guesses {
		participants.byKey[participantKey(guess.PoolID, guess.UserID)] = participant.Participant{
			PoolID: guess.PoolID,
			UserID: guess.UserID,
		}
		_ = predictions.Upsert(context.Background(), guess)
	}
	awards := &stubAwardRepository{}
	service := NewPublicationService(pools, matches, participants, predictions, awards, 4, logging.NewNop())
	service.now = func() time.Time { return now }
	return &publicationFixture{
		service:      service,
		matches:      matches,
		participants: participants,
		awards:       awards,
		now:          now,
	}
}

func TestPublicationService_PublishResult_AwardsTiers(t *testing.T) {
	t.Parallel()

	fixture := newPublicationFixture([]prediction.Prediction{
		{PoolID: "p1", UserID: "exact", MatchID: "m1", HomeScore: 2, AwayScore: 1},
		{PoolID: "p1", UserID: "difference", MatchID: "m1", HomeScore: 3, AwayScore: 2},
		{PoolID: "p1", UserID: "winner", MatchID: "m1", HomeScore: 1, AwayScore: 0},
		{PoolID: "p1", UserID: "miss", MatchID: "m1", HomeScore: 0, AwayScore: 2},
	})

	got, err := fixture.service.PublishResult(context.Background(), PublishResultInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   2,
		AwayScore:   1,
	})
	require.NoError(t, err)

	require.Equal(t, match.StatusFinished, got.Match.Status)
	require.NotNil(t, got.Match.PublishedAt)
	require.Equal(t, fixture.now, *got.Match.PublishedAt)

	require.Equal(t, 4, got.PredictionCount)
	require.Equal(t, 3, got.AwardedCount)
	require.Equal(t, 1, got.SkippedCount)
	require.Equal(t, 0, got.FailedCount)
	require.Equal(t, 8+5+3, got.PointsAwarded)

	expectPoints := map[string]int{"exact": 8, "difference": 5, "winner": 3, "miss": 0}
	for userID, want := range expectPoints {
		member, ok, err := fixture.participants.GetByPoolAndUser(context.Background(), "p1", userID)
		require.NoError(t, err)
		require.True(t, ok, "participant %s missing", userID)
		require.Equal(t, want, member.Points, "points for %s", userID)
	}

	ledger, err := fixture.awards.ListByMatch(context.Background(), "p1", "m1")
	require.NoError(t, err)
	require.Len(t, ledger, 3)
}

func TestPublicationService_PublishResult_RepublishIsIdempotent(t *testing.T) {
	t.Parallel()

	fixture := newPublicationFixture([]prediction.Prediction{
		{PoolID: "p1", UserID: "exact", MatchID: "m1", HomeScore: 2, AwayScore: 1},
	})

	input := PublishResultInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   2,
		AwayScore:   1,
	}
	first, err := fixture.service.PublishResult(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, first.AwardedCount)

	// A plain republish of a finished match is refused.
	_, err = fixture.service.PublishResult(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)

	member, _, err := fixture.participants.GetByPoolAndUser(context.Background(), "p1", "exact")
	require.NoError(t, err)
	require.Equal(t, 8, member.Points)
}

func TestPublicationService_PublishResult_ForceReawardsAdditively(t *testing.T) {
	t.Parallel()

	fixture := newPublicationFixture([]prediction.Prediction{
		{PoolID: "p1", UserID: "exact", MatchID: "m1", HomeScore: 2, AwayScore: 1},
	})

	input := PublishResultInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   2,
		AwayScore:   1,
	}
	_, err := fixture.service.PublishResult(context.Background(), input)
	require.NoError(t, err)

	input.Force = true
	forced, err := fixture.service.PublishResult(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, forced.AwardedCount)

	// The forced run bypasses the ledger guard, so the delta applies again.
	member, _, err := fixture.participants.GetByPoolAndUser(context.Background(), "p1", "exact")
	require.NoError(t, err)
	require.Equal(t, 16, member.Points)
}

func TestPublicationService_PublishResult_OwnerOnly(t *testing.T) {
	t.Parallel()

	fixture := newPublicationFixture(nil)

	_, err := fixture.service.PublishResult(context.Background(), PublishResultInput{
		ActorUserID: "user-9",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   1,
		AwayScore:   0,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPublicationService_PublishResult_RejectsNegativeScores(t *testing.T) {
	t.Parallel()

	fixture := newPublicationFixture(nil)

	_, err := fixture.service.PublishResult(context.Background(), PublishResultInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   -1,
		AwayScore:   0,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPublicationService_PublishResult_NoPredictions(t *testing.T) {
	t.Parallel()

	fixture := newPublicationFixture(nil)

	got, err := fixture.service.PublishResult(context.Background(), PublishResultInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   0,
		AwayScore:   0,
	})
	require.NoError(t, err)
	require.Equal(t, 0, got.PredictionCount)
	require.Equal(t, match.StatusFinished, got.Match.Status)
}

func TestPublicationService_PublishResult_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	fixture := newPublicationFixture([]prediction.Prediction{
		{PoolID: "p1", UserID: "exact", MatchID: "m1", HomeScore: 2, AwayScore: 1},
		{PoolID: "p1", UserID: "winner", MatchID: "m1", HomeScore: 1, AwayScore: 0},
	})
	fixture.awards.recordErr = context.DeadlineExceeded

	got, err := fixture.service.PublishResult(context.Background(), PublishResultInput{
		ActorUserID: "user-1",
		PoolID:      "p1",
		MatchID:     "m1",
		HomeScore:   2,
		AwayScore:   1,
	})
	require.NoError(t, err)
	require.Equal(t, 2, got.FailedCount)
	require.Equal(t, 0, got.AwardedCount)
	require.Equal(t, match.StatusFinished, got.Match.Status)
}
