package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/platform/logging"
)

// PredictionService lets participants record score guesses while a match is
// still open and exposes the guesses once it no longer is.
type PredictionService struct {
	pools        pool.Repository
	matches      match.Repository
	participants participant.Repository
	predictions  prediction.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewPredictionService(
	pools pool.Repository,
	matches match.Repository,
	participants participant.Repository,
	predictions prediction.Repository,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		pools:        pools,
		matches:      matches,
		participants: participants,
		predictions:  predictions,
		logger:       logger,
		now:          time.Now,
	}
}

type SavePredictionInput struct {
	ActorUserID string
	PoolID      string
	MatchID     string
	HomeScore   int
	AwayScore   int
}

// Save upserts the caller's prediction for a match. The caller must be a
// participant and the match must still accept predictions.
func (s *PredictionService) Save(ctx context.Context, input SavePredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Save")
	defer span.End()

	if strings.TrimSpace(input.ActorUserID) == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: scores must be zero or positive", ErrInvalidInput)
	}
	if _, err := s.requirePool(ctx, input.PoolID); err != nil {
		return prediction.Prediction{}, err
	}
	if err := s.requireParticipant(ctx, input.PoolID, input.ActorUserID); err != nil {
		return prediction.Prediction{}, err
	}

	item, exists, err := s.matches.GetByID(ctx, input.PoolID, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}
	if !item.AcceptsPredictionsAt(s.now()) {
		return prediction.Prediction{}, fmt.Errorf("%w: predictions are closed for this match", ErrInvalidInput)
	}

	saved := prediction.Prediction{
		PoolID:      input.PoolID,
		UserID:      input.ActorUserID,
		MatchID:     input.MatchID,
		HomeScore:   input.HomeScore,
		AwayScore:   input.AwayScore,
		PredictedAt: s.now().UTC(),
	}
	if err := s.predictions.Upsert(ctx, saved); err != nil {
		return prediction.Prediction{}, fmt.Errorf("save prediction: %w", err)
	}
	return saved, nil
}

// ListMine returns all of the caller's predictions within a pool.
func (s *PredictionService) ListMine(ctx context.Context, poolID, actorUserID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListMine")
	defer span.End()

	if strings.TrimSpace(actorUserID) == "" {
		return nil, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	if _, err := s.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, poolID, actorUserID); err != nil {
		return nil, err
	}
	items, err := s.predictions.ListByPoolAndUser(ctx, poolID, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

// ListByMatch returns everyone's predictions for a match, but only after the
// prediction window has closed. Guesses stay hidden while they can still be
// changed.
func (s *PredictionService) ListByMatch(ctx context.Context, poolID, matchID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByMatch")
	defer span.End()

	if _, err := s.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	item, exists, err := s.matches.GetByID(ctx, poolID, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if item.AcceptsPredictionsAt(s.now()) {
		return nil, fmt.Errorf("%w: predictions are hidden until the match closes", ErrForbidden)
	}

	items, err := s.predictions.ListByMatch(ctx, poolID, matchID)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

func (s *PredictionService) requirePool(ctx context.Context, poolID string) (pool.Pool, error) {
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
	return item, nil
}

func (s *PredictionService) requireParticipant(ctx context.Context, poolID, userID string) error {
	_, exists, err := s.participants.GetByPoolAndUser(ctx, poolID, userID)
	if err != nil {
		return fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: not a participant of this pool", ErrForbidden)
	}
	return nil
}
