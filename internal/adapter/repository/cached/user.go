package cached

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-crud-service/internal/adapter/cache"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
)

var _ user.Repository = (*CachedUserRepository)(nil)

// defaultSharedReadTimeout bounds a database read shared by concurrent misses
const defaultSharedReadTimeout = 10 * time.Second

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
// Cache failures are logged and never surface to callers.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group

	sharedReadTimeout time.Duration
}

// Option configures a CachedUserRepository
type Option func(*CachedUserRepository)

// WithSharedReadTimeout bounds the database read that concurrent misses share.
// Non-positive values keep the default.
func WithSharedReadTimeout(d time.Duration) Option {
	return func(r *CachedUserRepository) {
		if d > 0 {
			r.sharedReadTimeout = d
		}
	}
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger, opts ...Option) *CachedUserRepository {
	r := &CachedUserRepository{
		dbRepo:            dbRepo,
		cache:             cache,
		log:               log,
		sharedReadTimeout: defaultSharedReadTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create persists through the DB repository and primes the cache with the stored row.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created, err := r.dbRepo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, created); err != nil {
		r.log.Warn("failed to cache created user", zap.String("id", created.ID.String()), zap.Error(err))
	}

	return created, nil
}

// List always reads from the database.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.List(ctx)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to database", zap.String("id", id.String()), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	// Concurrent misses for the same id share one database read. The read is
	// detached from whichever caller started it; each caller still waits on its own ctx.
	ch := r.group.DoChan(cache.Key(id), func() (any, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.sharedReadTimeout)
		defer cancel()

		u, err := r.dbRepo.GetByID(readCtx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(readCtx, u); err != nil {
			r.log.Warn("failed to cache user", zap.String("id", id.String()), zap.Error(err))
		}

		return u, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.User), nil
	}
}
