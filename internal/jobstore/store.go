package jobstore

import (
	"context"
	"time"

	"github.com/futig/songsmith/internal/entity"
	"github.com/patrickmn/go-cache"
)

// Store keeps the latest known snapshot of provider jobs by id
type Store interface {
	Get(ctx context.Context, id string) (entity.Job, error)
	Set(ctx context.Context, job entity.Job) error
}

var _ Store = &CacheStore{}

// CacheStore is an in-process Store with per-entry expiry
type CacheStore struct {
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewCacheStore(ttl, cleanupInterval time.Duration) *CacheStore {
	return &CacheStore{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *CacheStore) Get(_ context.Context, id string) (entity.Job, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return entity.Job{}, entity.ErrJobNotFound
	}
	return v.(entity.Job), nil
}

func (s *CacheStore) Set(_ context.Context, job entity.Job) error {
	job.UpdatedAt = s.now().UTC()
	s.cache.Set(job.ID, job, s.ttl)
	return nil
}

// Len returns the number of unexpired jobs
func (s *CacheStore) Len() int {
	return s.cache.ItemCount()
}
