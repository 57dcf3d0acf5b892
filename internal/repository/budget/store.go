package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/lexsearch/internal/db"
	"github.com/kailas-cloud/lexsearch/internal/domain/usage"
)

// ErrNotCounterKey rejects writes to keys outside the budget counter layout.
var ErrNotCounterKey = errors.New("not a budget counter key")

// store is the subset of db.Store the counters need.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store persists per-provider token counters as integer keys in db.Store.
// Each counter expires a while after its period ends, so the store never
// needs a cleanup job.
type Store struct {
	store store
	ttls  map[usage.Period]time.Duration
}

// New creates a budget store. dayTTL and monthTTL must outlive the period
// they cover (48h and 62 days in production).
func New(s store, dayTTL, monthTTL time.Duration) *Store {
	return &Store{
		store: s,
		ttls: map[usage.Period]time.Duration{
			usage.PeriodDay:   dayTTL,
			usage.PeriodMonth: monthTTL,
		},
	}
}

// IncrBy adds val to the counter at key. The expiry is set with EXPIRE NX on
// the first write only, so it always counts from the start of the period.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	ttl, err := s.ttlFor(key)
	if err != nil {
		return err
	}
	if err := s.store.IncrBy(ctx, key, val); err != nil {
		return fmt.Errorf("budget incr %s: %w", key, err)
	}
	if err := s.store.Expire(ctx, key, ttl, true); err != nil {
		return fmt.Errorf("budget expire %s: %w", key, err)
	}
	return nil
}

// Get returns the counter at key, or 0 when nothing was recorded yet.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("budget get %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget get %s: corrupt counter %q: %w", key, data, err)
	}
	return val, nil
}

func (s *Store) ttlFor(key string) (time.Duration, error) {
	_, period, ok := usage.ParseCounterKey(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotCounterKey, key)
	}
	return s.ttls[period], nil
}
