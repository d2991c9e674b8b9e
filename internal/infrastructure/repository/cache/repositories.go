package cache

import (
	"context"

	"github.com/penca-app/penca-api/internal/domain/divisional"
	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/matchday"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/domain/team"
	basecache "github.com/penca-app/penca-api/internal/platform/cache"
)

// Read-through decorators over the postgres repositories. Keys follow the
// "{type}_{id}" convention so a whole type can be dropped with RemovePrefix.

type PoolRepository struct {
	next  pool.Repository
	cache *basecache.Store
}

func NewPoolRepository(next pool.Repository, cache *basecache.Store) *PoolRepository {
	return &PoolRepository{next: next, cache: cache}
}

func (r *PoolRepository) List(ctx context.Context) ([]pool.Pool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("pools", "all"), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]pool.Pool(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pool.Pool)
	return append([]pool.Pool(nil), items...), nil
}

func (r *PoolRepository) GetByID(ctx context.Context, poolID string) (pool.Pool, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("pool", poolID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return cachedPoolByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return pool.Pool{}, false, err
	}

	cached, _ := v.(cachedPoolByID)
	return cached.value, cached.exists, nil
}

func (r *PoolRepository) Create(ctx context.Context, item pool.Pool) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *PoolRepository) Update(ctx context.Context, item pool.Pool) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *PoolRepository) SoftDelete(ctx context.Context, poolID string) error {
	if err := r.next.SoftDelete(ctx, poolID); err != nil {
		return err
	}
	r.invalidate(ctx, poolID)
	return nil
}

func (r *PoolRepository) invalidate(ctx context.Context, poolID string) {
	r.cache.Remove(ctx, basecache.Key("pool", poolID))
	r.cache.Remove(ctx, basecache.Key("pools", "all"))
}

type cachedPoolByID struct {
	value  pool.Pool
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByPool(ctx context.Context, poolID string) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("teams", poolID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, poolID, teamID string) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("team", teamID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, poolID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *TeamRepository) SoftDelete(ctx context.Context, poolID, teamID string) error {
	if err := r.next.SoftDelete(ctx, poolID, teamID); err != nil {
		return err
	}
	r.invalidate(ctx, poolID, teamID)
	return nil
}

func (r *TeamRepository) invalidate(ctx context.Context, poolID, teamID string) {
	r.cache.Remove(ctx, basecache.Key("team", teamID))
	r.cache.Remove(ctx, basecache.Key("teams", poolID))
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type DivisionalRepository struct {
	next  divisional.Repository
	cache *basecache.Store
}

func NewDivisionalRepository(next divisional.Repository, cache *basecache.Store) *DivisionalRepository {
	return &DivisionalRepository{next: next, cache: cache}
}

func (r *DivisionalRepository) ListByPool(ctx context.Context, poolID string) ([]divisional.Divisional, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("divisionals", poolID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return append([]divisional.Divisional(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]divisional.Divisional)
	return append([]divisional.Divisional(nil), items...), nil
}

func (r *DivisionalRepository) GetByID(ctx context.Context, poolID, divisionalID string) (divisional.Divisional, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("divisional", divisionalID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, poolID, divisionalID)
		if err != nil {
			return nil, err
		}
		return cachedDivisionalByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return divisional.Divisional{}, false, err
	}

	cached, _ := v.(cachedDivisionalByID)
	return cached.value, cached.exists, nil
}

func (r *DivisionalRepository) Create(ctx context.Context, item divisional.Divisional) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *DivisionalRepository) Update(ctx context.Context, item divisional.Divisional) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *DivisionalRepository) SoftDelete(ctx context.Context, poolID, divisionalID string) error {
	if err := r.next.SoftDelete(ctx, poolID, divisionalID); err != nil {
		return err
	}
	r.invalidate(ctx, poolID, divisionalID)
	return nil
}

func (r *DivisionalRepository) invalidate(ctx context.Context, poolID, divisionalID string) {
	r.cache.Remove(ctx, basecache.Key("divisional", divisionalID))
	r.cache.Remove(ctx, basecache.Key("divisionals", poolID))
}

type cachedDivisionalByID struct {
	value  divisional.Divisional
	exists bool
}

type MatchdayRepository struct {
	next  matchday.Repository
	cache *basecache.Store
}

func NewMatchdayRepository(next matchday.Repository, cache *basecache.Store) *MatchdayRepository {
	return &MatchdayRepository{next: next, cache: cache}
}

func (r *MatchdayRepository) ListByPool(ctx context.Context, poolID string) ([]matchday.Matchday, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("matchdays", poolID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return append([]matchday.Matchday(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchday.Matchday)
	return append([]matchday.Matchday(nil), items...), nil
}

func (r *MatchdayRepository) GetByID(ctx context.Context, poolID, matchdayID string) (matchday.Matchday, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("matchday", matchdayID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, poolID, matchdayID)
		if err != nil {
			return nil, err
		}
		return cachedMatchdayByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return matchday.Matchday{}, false, err
	}

	cached, _ := v.(cachedMatchdayByID)
	return cached.value, cached.exists, nil
}

func (r *MatchdayRepository) Create(ctx context.Context, item matchday.Matchday) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *MatchdayRepository) Update(ctx context.Context, item matchday.Matchday) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *MatchdayRepository) SoftDelete(ctx context.Context, poolID, matchdayID string) error {
	if err := r.next.SoftDelete(ctx, poolID, matchdayID); err != nil {
		return err
	}
	r.invalidate(ctx, poolID, matchdayID)
	return nil
}

func (r *MatchdayRepository) invalidate(ctx context.Context, poolID, matchdayID string) {
	r.cache.Remove(ctx, basecache.Key("matchday", matchdayID))
	r.cache.Remove(ctx, basecache.Key("matchdays", poolID))
}

type cachedMatchdayByID struct {
	value  matchday.Matchday
	exists bool
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) ListByPool(ctx context.Context, poolID string) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("matches", poolID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, poolID, matchID string) (match.Match, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("match", matchID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, poolID, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.ID)
	return nil
}

func (r *MatchRepository) SoftDelete(ctx context.Context, poolID, matchID string) error {
	if err := r.next.SoftDelete(ctx, poolID, matchID); err != nil {
		return err
	}
	r.invalidate(ctx, poolID, matchID)
	return nil
}

func (r *MatchRepository) invalidate(ctx context.Context, poolID, matchID string) {
	r.cache.Remove(ctx, basecache.Key("match", matchID))
	r.cache.Remove(ctx, basecache.Key("matches", poolID))
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

type ParticipantRepository struct {
	next  participant.Repository
	cache *basecache.Store
}

func NewParticipantRepository(next participant.Repository, cache *basecache.Store) *ParticipantRepository {
	return &ParticipantRepository{next: next, cache: cache}
}

func (r *ParticipantRepository) ListByPool(ctx context.Context, poolID string) ([]participant.Participant, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("participants", poolID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return append([]participant.Participant(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]participant.Participant)
	return append([]participant.Participant(nil), items...), nil
}

func (r *ParticipantRepository) GetByPoolAndUser(ctx context.Context, poolID, userID string) (participant.Participant, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, participantCacheKey(poolID, userID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByPoolAndUser(ctx, poolID, userID)
		if err != nil {
			return nil, err
		}
		return cachedParticipant{value: item, exists: exists}, nil
	})
	if err != nil {
		return participant.Participant{}, false, err
	}

	cached, _ := v.(cachedParticipant)
	return cached.value, cached.exists, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.PoolID, item.UserID)
	return nil
}

func (r *ParticipantRepository) AddPoints(ctx context.Context, poolID, userID string, delta int) error {
	if err := r.next.AddPoints(ctx, poolID, userID, delta); err != nil {
		return err
	}
	r.invalidate(ctx, poolID, userID)
	return nil
}

func (r *ParticipantRepository) invalidate(ctx context.Context, poolID, userID string) {
	r.cache.Remove(ctx, participantCacheKey(poolID, userID))
	r.cache.Remove(ctx, basecache.Key("participants", poolID))
}

func participantCacheKey(poolID, userID string) string {
	return basecache.Key("participant", poolID+"_"+userID)
}

type cachedParticipant struct {
	value  participant.Participant
	exists bool
}

type PredictionRepository struct {
	next  prediction.Repository
	cache *basecache.Store
}

func NewPredictionRepository(next prediction.Repository, cache *basecache.Store) *PredictionRepository {
	return &PredictionRepository{next: next, cache: cache}
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Remove(ctx, basecache.Key("predictions", item.PoolID+"_"+item.UserID))
	r.cache.Remove(ctx, basecache.Key("match-predictions", item.MatchID))
	return nil
}

func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, poolID, userID, matchID string) (prediction.Prediction, bool, error) {
	// Individual guesses bypass the cache: they change right up to the
	// cutoff and a stale read would mask the latest save.
	return r.next.GetByUserAndMatch(ctx, poolID, userID, matchID)
}

func (r *PredictionRepository) ListByPoolAndUser(ctx context.Context, poolID, userID string) ([]prediction.Prediction, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("predictions", poolID+"_"+userID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPoolAndUser(ctx, poolID, userID)
		if err != nil {
			return nil, err
		}
		return append([]prediction.Prediction(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]prediction.Prediction)
	return append([]prediction.Prediction(nil), items...), nil
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, poolID, matchID string) ([]prediction.Prediction, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("match-predictions", matchID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByMatch(ctx, poolID, matchID)
		if err != nil {
			return nil, err
		}
		return append([]prediction.Prediction(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]prediction.Prediction)
	return append([]prediction.Prediction(nil), items...), nil
}

var (
	_ pool.Repository        = (*PoolRepository)(nil)
	_ team.Repository        = (*TeamRepository)(nil)
	_ divisional.Repository  = (*DivisionalRepository)(nil)
	_ matchday.Repository    = (*MatchdayRepository)(nil)
	_ match.Repository       = (*MatchRepository)(nil)
	_ participant.Repository = (*ParticipantRepository)(nil)
	_ prediction.Repository  = (*PredictionRepository)(nil)
)
