package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-crud-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func TestRedisUserCache_Set_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	user := &domain.User{ID: uuid.New(), Name: "John Doe", Email: "john@example.com"}

	err := cache.Set(context.Background(), user)
	require.NoError(t, err)

	raw, err := mr.Get("user:" + user.ID.String())
	require.NoError(t, err)

	var cached domain.User
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, *user, cached)
	assert.Equal(t, 5*time.Minute, mr.TTL(Key(user.ID)))
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := cache.Set(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Get_Success(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	user := &domain.User{ID: uuid.New(), Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, cache.Set(context.Background(), user))

	cached, err := cache.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, user, cached)
}

func TestRedisUserCache_Get_CacheMiss(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	cached, err := cache.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisUserCache_Get_CorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	id := uuid.New()
	require.NoError(t, mr.Set(Key(id), "{not json"))

	cached, err := cache.Get(context.Background(), id)
	assert.Error(t, err)
	assert.Nil(t, cached)
}

func TestRedisUserCache_Get_RedisError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	id := uuid.New()
	mock.ExpectGet(Key(id)).SetErr(errors.New("connection reset"))

	cached, err := cache.Get(context.Background(), id)
	assert.EqualError(t, err, "connection reset")
	assert.Nil(t, cached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisUserCache_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 2*time.Second, zaptest.NewLogger(t))

	user := &domain.User{ID: uuid.New(), Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, cache.Set(context.Background(), user))

	// Fast forward time in miniredis
	mr.FastForward(3 * time.Second)

	cached, err := cache.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}
