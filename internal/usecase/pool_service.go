package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/penca-app/penca-api/internal/domain/divisional"
	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/matchday"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/scoring"
	"github.com/penca-app/penca-api/internal/domain/team"
	idgen "github.com/penca-app/penca-api/internal/platform/id"
	"github.com/penca-app/penca-api/internal/platform/logging"
	concpool "github.com/sourcegraph/conc/pool"
)

type PoolService struct {
	pools       pool.Repository
	teams       team.Repository
	divisionals divisional.Repository
	matchdays   matchday.Repository
	matches     match.Repository
	ids         idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewPoolService(
	pools pool.Repository,
	teams team.Repository,
	divisionals divisional.Repository,
	matchdays matchday.Repository,
	matches match.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *PoolService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PoolService{
		pools:       pools,
		teams:       teams,
		divisionals: divisionals,
		matchdays:   matchdays,
		matches:     matches,
		ids:         ids,
		logger:      logger,
		now:         time.Now,
	}
}

type CreatePoolInput struct {
	OwnerUserID      string
	Name             string
	Description      string
	ExactScorePoints int
	DifferencePoints int
	WinnerPoints     int
}

func (s *PoolService) Create(ctx context.Context, input CreatePoolInput) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Create")
	defer span.End()

	if strings.TrimSpace(input.OwnerUserID) == "" {
		return pool.Pool{}, fmt.Errorf("%w: owner user id is required", ErrUnauthorized)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return pool.Pool{}, fmt.Errorf("%w: pool name is required", ErrInvalidInput)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return pool.Pool{}, fmt.Errorf("generate pool id: %w", err)
	}

	now := s.now().UTC()
	item := pool.Pool{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		OwnerUserID: input.OwnerUserID,
		Status:      pool.StatusActive,
		Rules: scoring.Rules{
			ExactScorePoints: input.ExactScorePoints,
			DifferencePoints: input.DifferencePoints,
			WinnerPoints:     input.WinnerPoints,
		}.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.pools.Create(ctx, item); err != nil {
		return pool.Pool{}, fmt.Errorf("create pool: %w", err)
	}

	s.logger.InfoContext(ctx, "pool created", "pool_id", item.ID, "owner_user_id", item.OwnerUserID)
	return item, nil
}

func (s *PoolService) List(ctx context.Context) ([]pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.List")
	defer span.End()

	items, err := s.pools.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	return items, nil
}

func (s *PoolService) Get(ctx context.Context, poolID string) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Get")
	defer span.End()

	return s.requirePool(ctx, poolID)
}

type UpdatePoolInput struct {
	ActorUserID      string
	PoolID           string
	Name             string
	Description      string
	Status           string
	ExactScorePoints int
	DifferencePoints int
	WinnerPoints     int
}

func (s *PoolService) Update(ctx context.Context, input UpdatePoolInput) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Update")
	defer span.End()

	item, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID)
	if err != nil {
		return pool.Pool{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	item.Description = strings.TrimSpace(input.Description)
	if status := strings.ToUpper(strings.TrimSpace(input.Status)); status != "" {
		if status != pool.StatusActive && status != pool.StatusInactive {
			return pool.Pool{}, fmt.Errorf("%w: invalid pool status %q", ErrInvalidInput, input.Status)
		}
		item.Status = status
	}
	item.Rules = scoring.Rules{
		ExactScorePoints: input.ExactScorePoints,
		DifferencePoints: input.DifferencePoints,
		WinnerPoints:     input.WinnerPoints,
	}.Normalize()
	item.UpdatedAt = s.now().UTC()

	if err := s.pools.Update(ctx, item); err != nil {
		return pool.Pool{}, fmt.Errorf("update pool: %w", err)
	}
	return item, nil
}

func (s *PoolService) Delete(ctx context.Context, poolID, actorUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Delete")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return err
	}
	if err := s.pools.SoftDelete(ctx, poolID); err != nil {
		return fmt.Errorf("delete pool: %w", err)
	}

	s.logger.InfoContext(ctx, "pool deleted", "pool_id", poolID, "actor_user_id", actorUserID)
	return nil
}

// PoolDetail aggregates a pool with its full schedule for the tournament
// view.
type PoolDetail struct {
	Pool        pool.Pool
	Teams       []team.Team
	Divisionals []divisional.Divisional
	Matchdays   []matchday.Matchday
	Matches     []match.Match
}

func (s *PoolService) GetDetail(ctx context.Context, poolID string) (PoolDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.GetDetail")
	defer span.End()

	item, err := s.requirePool(ctx, poolID)
	if err != nil {
		return PoolDetail{}, err
	}

	detail := PoolDetail{Pool: item}

	// Child collections are independent reads; fetch them concurrently.
	grp := concpool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		items, err := s.teams.ListByPool(ctx, poolID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		detail.Teams = items
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		items, err := s.divisionals.ListByPool(ctx, poolID)
		if err != nil {
			return fmt.Errorf("list divisionals: %w", err)
		}
		detail.Divisionals = items
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		items, err := s.matchdays.ListByPool(ctx, poolID)
		if err != nil {
			return fmt.Errorf("list matchdays: %w", err)
		}
		detail.Matchdays = items
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		items, err := s.matches.ListByPool(ctx, poolID)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		detail.Matches = items
		return nil
	})
	if err := grp.Wait(); err != nil {
		return PoolDetail{}, err
	}

	return detail, nil
}

func (s *PoolService) requirePool(ctx context.Context, poolID string) (pool.Pool, error) {
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

func (s *PoolService) requireOwnedPool(ctx context.Context, poolID, actorUserID string) (pool.Pool, error) {
	item, err := s.requirePool(ctx, poolID)
	if err != nil {
		return pool.Pool{}, err
	}
	if !item.IsOwnedBy(actorUserID) {
		return pool.Pool{}, fmt.Errorf("%w: only the pool owner may do this", ErrForbidden)
	}
	return item, nil
}
