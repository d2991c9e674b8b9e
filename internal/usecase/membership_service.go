package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/penca-app/penca-api/internal/domain/identity"
	"github.com/penca-app/penca-api/internal/domain/joinrequest"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/platform/logging"
)

// MembershipService handles join requests, participant lifecycle and the
// pool leaderboard.
type MembershipService struct {
	pools        pool.Repository
	participants participant.Repository
	requests     joinrequest.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewMembershipService(
	pools pool.Repository,
	participants participant.Repository,
	requests joinrequest.Repository,
	logger *logging.Logger,
) *MembershipService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MembershipService{
		pools:        pools,
		participants: participants,
		requests:     requests,
		logger:       logger,
		now:          time.Now,
	}
}

// RequestJoin files a pending join request for the caller. Existing
// participants and users with a pending request are rejected.
func (s *MembershipService) RequestJoin(ctx context.Context, poolID string, actor identity.Principal) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.RequestJoin")
	defer span.End()

	if strings.TrimSpace(actor.UserID) == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	item, err := s.requirePool(ctx, poolID)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}
	if item.Status != pool.StatusActive {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: pool is not accepting members", ErrInvalidInput)
	}
	if item.IsOwnedBy(actor.UserID) {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: the pool owner cannot request to join", ErrInvalidInput)
	}

	if _, exists, err := s.participants.GetByPoolAndUser(ctx, poolID, actor.UserID); err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get participant: %w", err)
	} else if exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: already a participant", ErrInvalidInput)
	}

	request := joinrequest.JoinRequest{
		PoolID:      poolID,
		UserID:      actor.UserID,
		DisplayName: actor.DisplayName,
		Username:    actor.Username,
		RequestedAt: s.now().UTC(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, joinrequest.ErrDuplicate) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request already pending", ErrInvalidInput)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("create join request: %w", err)
	}

	s.logger.InfoContext(ctx, "join requested", "pool_id", poolID, "user_id", actor.UserID)
	return request, nil
}

// ListJoinRequests returns the pending requests for a pool. Owner only.
func (s *MembershipService) ListJoinRequests(ctx context.Context, poolID, actorUserID string) ([]joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.ListJoinRequests")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return nil, err
	}
	items, err := s.requests.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list join requests: %w", err)
	}
	return items, nil
}

// Approve promotes a pending request into a participant starting at zero
// points and removes the request.
func (s *MembershipService) Approve(ctx context.Context, poolID, userID, actorUserID string) (participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.Approve")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return participant.Participant{}, err
	}
	request, exists, err := s.requests.GetByPoolAndUser(ctx, poolID, userID)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("get join request: %w", err)
	}
	if !exists {
		return participant.Participant{}, fmt.Errorf("%w: join request for user %s", ErrNotFound, userID)
	}

	member := participant.Participant{
		PoolID:      poolID,
		UserID:      request.UserID,
		DisplayName: request.DisplayName,
		Username:    request.Username,
		Points:      0,
		JoinedAt:    s.now().UTC(),
	}
	if err := s.participants.Create(ctx, member); err != nil {
		return participant.Participant{}, fmt.Errorf("create participant: %w", err)
	}
	if err := s.requests.Delete(ctx, poolID, userID); err != nil {
		return participant.Participant{}, fmt.Errorf("delete join request: %w", err)
	}

	s.logger.InfoContext(ctx, "join request approved", "pool_id", poolID, "user_id", userID)
	return member, nil
}

// Reject removes a pending request without creating a participant.
func (s *MembershipService) Reject(ctx context.Context, poolID, userID, actorUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.Reject")
	defer span.End()

	if _, err := s.requireOwnedPool(ctx, poolID, actorUserID); err != nil {
		return err
	}
	if _, exists, err := s.requests.GetByPoolAndUser(ctx, poolID, userID); err != nil {
		return fmt.Errorf("get join request: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: join request for user %s", ErrNotFound, userID)
	}
	if err := s.requests.Delete(ctx, poolID, userID); err != nil {
		return fmt.Errorf("delete join request: %w", err)
	}

	s.logger.InfoContext(ctx, "join request rejected", "pool_id", poolID, "user_id", userID)
	return nil
}

func (s *MembershipService) ListParticipants(ctx context.Context, poolID string) ([]participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.ListParticipants")
	defer span.End()

	if _, err := s.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	items, err := s.participants.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return items, nil
}

// Standings returns participants ordered by points descending, then by join
// time ascending for a stable listing. Equal point totals share a rank.
func (s *MembershipService) Standings(ctx context.Context, poolID string) ([]participant.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.Standings")
	defer span.End()

	items, err := s.ListParticipants(ctx, poolID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Points != items[j].Points {
			return items[i].Points > items[j].Points
		}
		return items[i].JoinedAt.Before(items[j].JoinedAt)
	})

	standings := make([]participant.Standing, 0, len(items))
	rank := 0
	lastPoints := 0
	for i, item := range items {
		if i == 0 || item.Points != lastPoints {
			rank = i + 1
			lastPoints = item.Points
		}
		standings = append(standings, participant.Standing{Participant: item, Rank: rank})
	}
	return standings, nil
}

func (s *MembershipService) requirePool(ctx context.Context, poolID string) (pool.Pool, error) {
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

func (s *MembershipService) requireOwnedPool(ctx context.Context, poolID, actorUserID string) (pool.Pool, error) {
	item, err := s.requirePool(ctx, poolID)
	if err != nil {
		return pool.Pool{}, err
	}
	if !item.IsOwnedBy(actorUserID) {
		return pool.Pool{}, fmt.Errorf("%w: only the pool owner may do this", ErrForbidden)
	}
	return item, nil
}
