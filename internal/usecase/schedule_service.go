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
	"github.com/penca-app/penca-api/internal/domain/team"
	idgen "github.com/penca-app/penca-api/internal/platform/id"
	"github.com/penca-app/penca-api/internal/platform/logging"
)

// ScheduleService owns the pool schedule: teams, divisionals, matchdays and
// matches. All writes are restricted to the pool owner.
type ScheduleService struct {
	pools       pool.Repository
	teams       team.Repository
	divisionals divisional.Repository
	matchdays   matchday.Repository
	matches     match.Repository
	ids         idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewScheduleService(
	pools pool.Repository,
	teams team.Repository,
	divisionals divisional.Repository,
	matchdays matchday.Repository,
	matches match.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
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

func (s *ScheduleService) ListTeams(ctx context.Context, poolID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListTeams")
	defer span.End()

	if _, err := s.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	items, err := s.teams.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

type SaveTeamInput struct {
	ActorUserID  string
	PoolID       string
	TeamID       string
	Name         string
	LogoURL      string
	DivisionalID string
}

func (s *ScheduleService) CreateTeam(ctx context.Context, input SaveTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CreateTeam")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID); err != nil {
		return team.Team{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if err := s.requireDivisionalIfSet(ctx, input.PoolID, input.DivisionalID); err != nil {
		return team.Team{}, err
	}

	id, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	item := team.Team{
		ID:           id,
		PoolID:       input.PoolID,
		Name:         name,
		LogoURL:      strings.TrimSpace(input.LogoURL),
		DivisionalID: strings.TrimSpace(input.DivisionalID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.teams.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) UpdateTeam(ctx context.Context, input SaveTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.UpdateTeam")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID); err != nil {
		return team.Team{}, err
	}
	item, exists, err := s.teams.GetByID(ctx, input.PoolID, input.TeamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, input.TeamID)
	}
	if err := s.requireDivisionalIfSet(ctx, input.PoolID, input.DivisionalID); err != nil {
		return team.Team{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	item.LogoURL = strings.TrimSpace(input.LogoURL)
	item.DivisionalID = strings.TrimSpace(input.DivisionalID)
	item.UpdatedAt = s.now().UTC()

	if err := s.teams.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) DeleteTeam(ctx context.Context, poolID, teamID, actorUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.DeleteTeam")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return err
	}
	if err := s.teams.SoftDelete(ctx, poolID, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (s *ScheduleService) ListDivisionals(ctx context.Context, poolID string) ([]divisional.Divisional, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListDivisionals")
	defer span.End()

	if _, err := s.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	items, err := s.divisionals.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list divisionals: %w", err)
	}
	return items, nil
}

type SaveDivisionalInput struct {
	ActorUserID  string
	PoolID       string
	DivisionalID string
	Name         string
}

func (s *ScheduleService) CreateDivisional(ctx context.Context, input SaveDivisionalInput) (divisional.Divisional, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CreateDivisional")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID); err != nil {
		return divisional.Divisional{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return divisional.Divisional{}, fmt.Errorf("%w: divisional name is required", ErrInvalidInput)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return divisional.Divisional{}, fmt.Errorf("generate divisional id: %w", err)
	}

	now := s.now().UTC()
	item := divisional.Divisional{
		ID:        id,
		PoolID:    input.PoolID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.divisionals.Create(ctx, item); err != nil {
		return divisional.Divisional{}, fmt.Errorf("create divisional: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) DeleteDivisional(ctx context.Context, poolID, divisionalID, actorUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.DeleteDivisional")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return err
	}
	if err := s.divisionals.SoftDelete(ctx, poolID, divisionalID); err != nil {
		return fmt.Errorf("delete divisional: %w", err)
	}
	return nil
}

func (s *ScheduleService) ListMatchdays(ctx context.Context, poolID string) ([]matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListMatchdays")
	defer span.End()

	if _, err := s.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	items, err := s.matchdays.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list matchdays: %w", err)
	}
	return items, nil
}

type SaveMatchdayInput struct {
	ActorUserID  string
	PoolID       string
	MatchdayID   string
	Number       int
	DisplayName  string
	DivisionalID string
}

func (s *ScheduleService) CreateMatchday(ctx context.Context, input SaveMatchdayInput) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CreateMatchday")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID); err != nil {
		return matchday.Matchday{}, err
	}
	if input.Number <= 0 {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday number must be positive", ErrInvalidInput)
	}
	if err := s.requireDivisionalIfSet(ctx, input.PoolID, input.DivisionalID); err != nil {
		return matchday.Matchday{}, err
	}

	id, err := s.ids.NewID()
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("generate matchday id: %w", err)
	}

	now := s.now().UTC()
	item := matchday.Matchday{
		ID:           id,
		PoolID:       input.PoolID,
		Number:       input.Number,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		DivisionalID: strings.TrimSpace(input.DivisionalID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.matchdays.Create(ctx, item); err != nil {
		return matchday.Matchday{}, fmt.Errorf("create matchday: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) DeleteMatchday(ctx context.Context, poolID, matchdayID, actorUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.DeleteMatchday")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return err
	}
	if err := s.matchdays.SoftDelete(ctx, poolID, matchdayID); err != nil {
		return fmt.Errorf("delete matchday: %w", err)
	}
	return nil
}

func (s *ScheduleService) ListMatches(ctx context.Context, poolID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListMatches")
	defer span.End()

	if _, err := s.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	items, err := s.matches.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

type SaveMatchInput struct {
	ActorUserID  string
	PoolID       string
	MatchID      string
	HomeTeamID   string
	AwayTeamID   string
	KickoffAt    time.Time
	MatchdayID   string
	DivisionalID string
}

func (s *ScheduleService) CreateMatch(ctx context.Context, input SaveMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CreateMatch")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID); err != nil {
		return match.Match{}, err
	}
	if err := s.validateMatchInput(ctx, input); err != nil {
		return match.Match{}, err
	}

	id, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	item := match.Match{
		ID:           id,
		PoolID:       input.PoolID,
		MatchdayID:   strings.TrimSpace(input.MatchdayID),
		DivisionalID: strings.TrimSpace(input.DivisionalID),
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		KickoffAt:    input.KickoffAt.UTC(),
		Status:       match.StatusScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.matches.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return item, nil
}

// UpdateMatch reschedules a match while it is still SCHEDULED. Score and
// status changes go through result publication instead.
func (s *ScheduleService) UpdateMatch(ctx context.Context, input SaveMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.UpdateMatch")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, input.PoolID, input.ActorUserID); err != nil {
		return match.Match{}, err
	}
	item, exists, err := s.matches.GetByID(ctx, input.PoolID, input.MatchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}
	if item.Status != match.StatusScheduled {
		return match.Match{}, fmt.Errorf("%w: only scheduled matches can be rescheduled", ErrInvalidInput)
	}
	if err := s.validateMatchInput(ctx, input); err != nil {
		return match.Match{}, err
	}

	item.HomeTeamID = input.HomeTeamID
	item.AwayTeamID = input.AwayTeamID
	item.KickoffAt = input.KickoffAt.UTC()
	item.MatchdayID = strings.TrimSpace(input.MatchdayID)
	item.DivisionalID = strings.TrimSpace(input.DivisionalID)
	item.UpdatedAt = s.now().UTC()

	if err := s.matches.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	return item, nil
}

// MarkMatchLive moves a scheduled match into LIVE, closing predictions.
func (s *ScheduleService) MarkMatchLive(ctx context.Context, poolID, matchID, actorUserID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.MarkMatchLive")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return match.Match{}, err
	}
	item, exists, err := s.matches.GetByID(ctx, poolID, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if item.Status != match.StatusScheduled {
		return match.Match{}, fmt.Errorf("%w: match is %s, expected %s", ErrInvalidInput, item.Status, match.StatusScheduled)
	}

	item.Status = match.StatusLive
	item.UpdatedAt = s.now().UTC()
	if err := s.matches.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) DeleteMatch(ctx context.Context, poolID, matchID, actorUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.DeleteMatch")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return err
	}
	if err := s.matches.SoftDelete(ctx, poolID, matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func (s *ScheduleService) validateMatchInput(ctx context.Context, input SaveMatchInput) error {
	if strings.TrimSpace(input.HomeTeamID) == "" || strings.TrimSpace(input.AwayTeamID) == "" {
		return fmt.Errorf("%w: home and away team ids are required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if input.KickoffAt.IsZero() {
		return fmt.Errorf("%w: kickoff time is required", ErrInvalidInput)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		_, exists, err := s.teams.GetByID(ctx, input.PoolID, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team %s is not part of the pool", ErrInvalidInput, teamID)
		}
	}

	if matchdayID := strings.TrimSpace(input.MatchdayID); matchdayID != "" {
		_, exists, err := s.matchdays.GetByID(ctx, input.PoolID, matchdayID)
		if err != nil {
			return fmt.Errorf("get matchday: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: matchday %s is not part of the pool", ErrInvalidInput, matchdayID)
		}
	}
	return s.requireDivisionalIfSet(ctx, input.PoolID, input.DivisionalID)
}

func (s *ScheduleService) requireDivisionalIfSet(ctx context.Context, poolID, divisionalID string) error {
	divisionalID = strings.TrimSpace(divisionalID)
	if divisionalID == "" {
		return nil
	}
	_, exists, err := s.divisionals.GetByID(ctx, poolID, divisionalID)
	if err != nil {
		return fmt.Errorf("get divisional: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: divisional %s is not part of the pool", ErrInvalidInput, divisionalID)
	}
	return nil
}

func (s *ScheduleService) requirePool(ctx context.Context, poolID string) (pool.Pool, error) {
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

func (s *ScheduleService) requireOwnedPool(ctx context.Context, poolID, actorUserID string) (pool.Pool, error) {
	item, err := s.requirePool(ctx, poolID)
	if err != nil {
		return pool.Pool{}, err
	}
	if !item.IsOwnedBy(actorUserID) {
		return pool.Pool{}, fmt.Errorf("%w: only the pool owner may do this", ErrForbidden)
	}
	return item, nil
}
