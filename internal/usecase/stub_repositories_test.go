package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/penca-app/penca-api/internal/domain/award"
	"github.com/penca-app/penca-api/internal/domain/divisional"
	"github.com/penca-app/penca-api/internal/domain/joinrequest"
	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/matchday"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/domain/team"
	idgen "github.com/penca-app/penca-api/internal/platform/id"
)

type stubPoolRepository struct {
	mu      sync.Mutex
	byID    map[string]pool.Pool
	listErr error
}

func (s *stubPoolRepository) List(ctx context.Context) ([]pool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	items := make([]pool.Pool, 0, len(s.byID))
	for _, item := range s.byID {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *stubPoolRepository) GetByID(ctx context.Context, poolID string) (pool.Pool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byID[poolID]
	return item, ok, nil
}

func (s *stubPoolRepository) Create(ctx context.Context, item pool.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byID == nil {
		s.byID = map[string]pool.Pool{}
	}
	s.byID[item.ID] = item
	return nil
}

func (s *stubPoolRepository) Update(ctx context.Context, item pool.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[item.ID] = item
	return nil
}

func (s *stubPoolRepository) SoftDelete(ctx context.Context, poolID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, poolID)
	return nil
}

type stubTeamRepository struct {
	byPool map[string][]team.Team
}

func (s *stubTeamRepository) ListByPool(ctx context.Context, poolID string) ([]team.Team, error) {
	return s.byPool[poolID], nil
}

func (s *stubTeamRepository) GetByID(ctx context.Context, poolID, teamID string) (team.Team, bool, error) {
	for _, item := range s.byPool[poolID] {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) Create(ctx context.Context, item team.Team) error {
	if s.byPool == nil {
		s.byPool = map[string][]team.Team{}
	}
	s.byPool[item.PoolID] = append(s.byPool[item.PoolID], item)
	return nil
}

func (s *stubTeamRepository) Update(ctx context.Context, item team.Team) error {
	items := s.byPool[item.PoolID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
		}
	}
	return nil
}

func (s *stubTeamRepository) SoftDelete(ctx context.Context, poolID, teamID string) error {
	items := s.byPool[poolID]
	kept := items[:0]
	for _, item := range items {
		if item.ID != teamID {
			kept = append(kept, item)
		}
	}
	s.byPool[poolID] = kept
	return nil
}

type stubDivisionalRepository struct {
	byPool map[string][]divisional.Divisional
}

func (s *stubDivisionalRepository) ListByPool(ctx context.Context, poolID string) ([]divisional.Divisional, error) {
	return s.byPool[poolID], nil
}

func (s *stubDivisionalRepository) GetByID(ctx context.Context, poolID, divisionalID string) (divisional.Divisional, bool, error) {
	for _, item := range s.byPool[poolID] {
		if item.ID == divisionalID {
			return item, true, nil
		}
	}
	return divisional.Divisional{}, false, nil
}

func (s *stubDivisionalRepository) Create(ctx context.Context, item divisional.Divisional) error {
	if s.byPool == nil {
		s.byPool = map[string][]divisional.Divisional{}
	}
	s.byPool[item.PoolID] = append(s.byPool[item.PoolID], item)
	return nil
}

func (s *stubDivisionalRepository) Update(ctx context.Context, item divisional.Divisional) error {
	items := s.byPool[item.PoolID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
		}
	}
	return nil
}

func (s *stubDivisionalRepository) SoftDelete(ctx context.Context, poolID, divisionalID string) error {
	items := s.byPool[poolID]
	kept := items[:0]
	for _, item := range items {
		if item.ID != divisionalID {
			kept = append(kept, item)
		}
	}
	s.byPool[poolID] = kept
	return nil
}

type stubMatchdayRepository struct {
	byPool map[string][]matchday.Matchday
}

func (s *stubMatchdayRepository) ListByPool(ctx context.Context, poolID string) ([]matchday.Matchday, error) {
	return s.byPool[poolID], nil
}

func (s *stubMatchdayRepository) GetByID(ctx context.Context, poolID, matchdayID string) (matchday.Matchday, bool, error) {
	for _, item := range s.byPool[poolID] {
		if item.ID == matchdayID {
			return item, true, nil
		}
	}
	return matchday.Matchday{}, false, nil
}

func (s *stubMatchdayRepository) Create(ctx context.Context, item matchday.Matchday) error {
	if s.byPool == nil {
		s.byPool = map[string][]matchday.Matchday{}
	}
	s.byPool[item.PoolID] = append(s.byPool[item.PoolID], item)
	return nil
}

func (s *stubMatchdayRepository) Update(ctx context.Context, item matchday.Matchday) error {
	items := s.byPool[item.PoolID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
		}
	}
	return nil
}

func (s *stubMatchdayRepository) SoftDelete(ctx context.Context, poolID, matchdayID string) error {
	items := s.byPool[poolID]
	kept := items[:0]
	for _, item := range items {
		if item.ID != matchdayID {
			kept = append(kept, item)
		}
	}
	s.byPool[poolID] = kept
	return nil
}

type stubMatchRepository struct {
	mu     sync.Mutex
	byPool map[string][]match.Match
}

func (s *stubMatchRepository) ListByPool(ctx context.Context, poolID string) ([]match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byPool[poolID], nil
}

func (s *stubMatchRepository) GetByID(ctx context.Context, poolID, matchID string) (match.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.byPool[poolID] {
		if item.ID == matchID {
			return item, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (s *stubMatchRepository) Create(ctx context.Context, item match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byPool == nil {
		s.byPool = map[string][]match.Match{}
	}
	s.byPool[item.PoolID] = append(s.byPool[item.PoolID], item)
	return nil
}

func (s *stubMatchRepository) Update(ctx context.Context, item match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.byPool[item.PoolID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
		}
	}
	return nil
}

func (s *stubMatchRepository) SoftDelete(ctx context.Context, poolID, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.byPool[poolID]
	kept := items[:0]
	for _, item := range items {
		if item.ID != matchID {
			kept = append(kept, item)
		}
	}
	s.byPool[poolID] = kept
	return nil
}

type stubParticipantRepository struct {
	mu     sync.Mutex
	byKey  map[string]participant.Participant
	addErr error
}

func participantKey(poolID, userID string) string {
	return poolID + "/" + userID
}

func (s *stubParticipantRepository) ListByPool(ctx context.Context, poolID string) ([]participant.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]participant.Participant, 0, len(s.byKey))
	for _, item := range s.byKey {
		if item.PoolID == poolID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items, nil
}

func (s *stubParticipantRepository) GetByPoolAndUser(ctx context.Context, poolID, userID string) (participant.Participant, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byKey[participantKey(poolID, userID)]
	return item, ok, nil
}

func (s *stubParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byKey == nil {
		s.byKey = map[string]participant.Participant{}
	}
	s.byKey[participantKey(item.PoolID, item.UserID)] = item
	return nil
}

func (s *stubParticipantRepository) AddPoints(ctx context.Context, poolID, userID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	item := s.byKey[participantKey(poolID, userID)]
	item.Points += delta
	s.byKey[participantKey(poolID, userID)] = item
	return nil
}

type stubJoinRequestRepository struct {
	mu    sync.Mutex
	byKey map[string]joinrequest.JoinRequest
}

func (s *stubJoinRequestRepository) ListByPool(ctx context.Context, poolID string) ([]joinrequest.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]joinrequest.JoinRequest, 0, len(s.byKey))
	for _, item := range s.byKey {
		if item.PoolID == poolID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items, nil
}

func (s *stubJoinRequestRepository) GetByPoolAndUser(ctx context.Context, poolID, userID string) (joinrequest.JoinRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byKey[participantKey(poolID, userID)]
	return item, ok, nil
}

func (s *stubJoinRequestRepository) Create(ctx context.Context, item joinrequest.JoinRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byKey == nil {
		s.byKey = map[string]joinrequest.JoinRequest{}
	}
	key := participantKey(item.PoolID, item.UserID)
	if _, ok := s.byKey[key]; ok {
		return joinrequest.ErrDuplicate
	}
	s.byKey[key] = item
	return nil
}

func (s *stubJoinRequestRepository) Delete(ctx context.Context, poolID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byKey, participantKey(poolID, userID))
	return nil
}

type stubPredictionRepository struct {
	mu    sync.Mutex
	byKey map[string]prediction.Prediction
}

func predictionKey(poolID, userID, matchID string) string {
	return poolID + "/" + userID + "/" + matchID
}

func (s *stubPredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byKey == nil {
		s.byKey = map[string]prediction.Prediction{}
	}
	s.byKey[predictionKey(item.PoolID, item.UserID, item.MatchID)] = item
	return nil
}

func (s *stubPredictionRepository) GetByUserAndMatch(ctx context.Context, poolID, userID, matchID string) (prediction.Prediction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byKey[predictionKey(poolID, userID, matchID)]
	return item, ok, nil
}

func (s *stubPredictionRepository) ListByPoolAndUser(ctx context.Context, poolID, userID string) ([]prediction.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]prediction.Prediction, 0, len(s.byKey))
	for _, item := range s.byKey {
		if item.PoolID == poolID && item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MatchID < items[j].MatchID })
	return items, nil
}

func (s *stubPredictionRepository) ListByMatch(ctx context.Context, poolID, matchID string) ([]prediction.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]prediction.Prediction, 0, len(s.byKey))
	for _, item := range s.byKey {
		if item.PoolID == poolID && item.MatchID == matchID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items, nil
}

type stubAwardRepository struct {
	mu        sync.Mutex
	byKey     map[string]award.Award
	recordErr error
}

func awardKey(poolID, matchID, userID string) string {
	return poolID + "/" + matchID + "/" + userID
}

func (s *stubAwardRepository) Record(ctx context.Context, item award.Award) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordErr != nil {
		return false, s.recordErr
	}
	if s.byKey == nil {
		s.byKey = map[string]award.Award{}
	}
	key := awardKey(item.PoolID, item.MatchID, item.UserID)
	if _, ok := s.byKey[key]; ok {
		return false, nil
	}
	s.byKey[key] = item
	return true, nil
}

func (s *stubAwardRepository) ListByMatch(ctx context.Context, poolID, matchID string) ([]award.Award, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]award.Award, 0, len(s.byKey))
	for _, item := range s.byKey {
		if item.PoolID == poolID && item.MatchID == matchID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items, nil
}

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (s *stubIDGenerator) NewID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("id-%d", s.next), nil
}

var _ pool.Repository = (*stubPoolRepository)(nil)
var _ team.Repository = (*stubTeamRepository)(nil)
var _ divisional.Repository = (*stubDivisionalRepository)(nil)
var _ matchday.Repository = (*stubMatchdayRepository)(nil)
var _ match.Repository = (*stubMatchRepository)(nil)
var _ participant.Repository = (*stubParticipantRepository)(nil)
var _ joinrequest.Repository = (*stubJoinRequestRepository)(nil)
var _ prediction.Repository = (*stubPredictionRepository)(nil)
var _ award.Repository = (*stubAwardRepository)(nil)
var _ idgen.Generator = (*stubIDGenerator)(nil)
