package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/penca-app/penca-api/internal/domain/award"
	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/domain/scoring"
	"github.com/penca-app/penca-api/internal/platform/logging"
)

const defaultPublicationWorkers = 8

// PublicationService finalizes a match result and fans the point awards out
// to everyone who predicted it. The award ledger keeps republishing from
// double counting; Force bypasses the ledger guard for corrections.
type PublicationService struct {
	pools        pool.Repository
	matches      match.Repository
	participants participant.Repository
	predictions  prediction.Repository
	awards       award.Repository
	workerCount  int
	logger       *logging.Logger
	now          func() time.Time
}

func NewPublicationService(
	pools pool.Repository,
	matches match.Repository,
	participants participant.Repository,
	predictions prediction.Repository,
	awards award.Repository,
	workerCount int,
	logger *logging.Logger,
) *PublicationService {
	if workerCount <= 0 {
		workerCount = defaultPublicationWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PublicationService{
		pools:        pools,
		matches:      matches,
		participants: participants,
		predictions:  predictions,
		awards:       awards,
		workerCount:  workerCount,
		logger:       logger,
		now:          time.Now,
	}
}

type PublishResultInput struct {
	ActorUserID string
	PoolID      string
	MatchID     string
	HomeScore   int
	AwayScore   int
	// Force re-awards points even for predictions already in the ledger.
	Force bool
}

type PublishResultOutput struct {
	Match           match.Match `json:"match"`
	PredictionCount int         `json:"prediction_count"`
	AwardedCount    int         `json:"awarded_count"`
	SkippedCount    int         `json:"skipped_count"`
	FailedCount     int         `json:"failed_count"`
	PointsAwarded   int         `json:"points_awarded"`
}

// PublishResult sets the final score, marks the match FINISHED and awards
// points for every prediction of the match. Owner only.
func (s *PublicationService) PublishResult(ctx context.Context, input PublishResultInput) (PublishResultOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicationService.PublishResult")
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return PublishResultOutput{}, fmt.Errorf("%w: scores must be zero or positive", ErrInvalidInput)
	}
	owned, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID)
	if err != nil {
		return PublishResultOutput{}, err
	}

	item, exists, err := s.matches.GetByID(ctx, input.PoolID, input.MatchID)
	if err != nil {
		return PublishResultOutput{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return PublishResultOutput{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}
	if item.IsFinished() && !input.Force {
		return PublishResultOutput{}, fmt.Errorf("%w: result already published, use force to republish", ErrInvalidInput)
	}

	now := s.now().UTC()
	item.HomeScore = input.HomeScore
	item.AwayScore = input.AwayScore
	item.Status = match.StatusFinished
	item.PublishedAt = &now
	item.UpdatedAt = now
	if err := s.matches.Update(ctx, item); err != nil {
		return PublishResultOutput{}, fmt.Errorf("update match: %w", err)
	}

	guesses, err := s.predictions.ListByMatch(ctx, input.PoolID, input.MatchID)
	if err != nil {
		return PublishResultOutput{}, fmt.Errorf("list predictions: %w", err)
	}

	output := PublishResultOutput{Match: item, PredictionCount: len(guesses)}
	if len(guesses) == 0 {
		s.logger.InfoContext(ctx, "result published without predictions", "pool_id", input.PoolID, "match_id", input.MatchID)
		return output, nil
	}

	rules := owned.Rules.Normalize()

	var awardedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32
	var pointsAwarded atomic.Int64

	workerCount := s.workerCount
	if workerCount > len(guesses) {
		workerCount = len(guesses)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return PublishResultOutput{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, guess := range guesses {
		guess := guess
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			outcome := scoring.Score(item.HomeScore, item.AwayScore, guess.HomeScore, guess.AwayScore, rules)
			if outcome.Points == 0 {
				skippedCount.Add(1)
				return
			}

			recorded, err := s.awards.Record(ctx, award.Award{
				PoolID:    input.PoolID,
				MatchID:   input.MatchID,
				UserID:    guess.UserID,
				Points:    outcome.Points,
				Tier:      outcome.Tier,
				AwardedAt: now,
			})
			if err != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "record award", "error", err, "pool_id", input.PoolID, "match_id", input.MatchID, "user_id", guess.UserID)
				return
			}
			if !recorded && !input.Force {
				skippedCount.Add(1)
				return
			}

			if err := s.participants.AddPoints(ctx, input.PoolID, guess.UserID, outcome.Points); err != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "add points", "error", err, "pool_id", input.PoolID, "match_id", input.MatchID, "user_id", guess.UserID)
				return
			}
			awardedCount.Add(1)
			pointsAwarded.Add(int64(outcome.Points))
		}); err != nil {
			workers.Done()
			return PublishResultOutput{}, fmt.Errorf("submit award task: %w", err)
		}
	}
	workers.Wait()

	output.AwardedCount = int(awardedCount.Load())
	output.SkippedCount = int(skippedCount.Load())
	output.FailedCount = int(failedCount.Load())
	output.PointsAwarded = int(pointsAwarded.Load())

	s.logger.InfoContext(ctx, "result published",
		"pool_id", input.PoolID,
		"match_id", input.MatchID,
		"predictions", output.PredictionCount,
		"awarded", output.AwardedCount,
		"skipped", output.SkippedCount,
		"failed", output.FailedCount,
		"points", output.PointsAwarded,
	)
	return output, nil
}

func (s *PublicationService) requireOwnedPool(ctx context.Context, poolID, actorUserID string) (pool.Pool, error) {
	if strings.TrimSpace(poolID) == "" {
		return pool.Pool{}, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}
	item, exists, err := s.pools.GetByID(ctx, poolID)
	if err != nil {
		return pool.Pool{}, fmt.Errorf("get pool: %w", err)
	}
	if !exists {
		return pool.Pool{}, fmt.Errorf("%w: pool %s", ErrNotFound, poolID)
	}
	if !item.IsOwnedBy(actorUserID) {
		return pool.Pool{}, fmt.Errorf("%w: only the pool owner may do this", ErrForbidden)
	}
	return item, nil
}
