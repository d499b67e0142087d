package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starfield-server/internal/space"
	"starfield-server/internal/viewport"
)

const testKeyPrefix = "starfield:session:"

func newTestRedisRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client, testKeyPrefix, slog.Default()), mr
}

func TestRedisKeyAndTTL(t *testing.T) {
	repo := NewRedisRepository(nil, testKeyPrefix, slog.Default())

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	id := uuid.MustParse("6f1c1c2e-7a53-4c8e-9a3f-1d2b3c4d5e6f")
	assert.Equal(t, "starfield:session:6f1c1c2e-7a53-4c8e-9a3f-1d2b3c4d5e6f", repo.key(id))

	assert.Equal(t, time.Hour, repo.ttl(&Session{ExpiresAt: now.Add(time.Hour)}))
	assert.Equal(t, time.Millisecond, repo.ttl(&Session{ExpiresAt: now.Add(-time.Hour)}))
}

func TestRedisRoundTripKeepsSelection(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRedisRepository(t)

	s := &Session{
		ID:         uuid.New(),
		Pan:        space.Vec2{X: 0.5, Y: 30},
		Directions: viewport.Directions{Left: true},
		Selected:   &Selection{Cell: space.Cell{X: 6, Y: 32}, Position: space.Vec2{X: 6, Y: 2}},
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, s))
	assert.True(t, mr.Exists(repo.key(s.ID)))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL(repo.key(s.ID)).Seconds(), 5)

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Pan, got.Pan)
	assert.True(t, got.Directions.Left)
	require.NotNil(t, got.Selected)
	assert.Equal(t, *s.Selected, *got.Selected)

	got.Selected = nil
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Selected)
}

func TestRedisCreateRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRedisRepository(t)

	s := &Session{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, s))

	err := repo.Create(ctx, s)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisMissingSessions(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRedisRepository(t)

	s := &Session{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}

	_, err := repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, s), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, s.ID), ErrNotFound)
}

func TestRedisSessionExpires(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRedisRepository(t)

	s := &Session{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, s))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDelete(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRedisRepository(t)

	s := &Session{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))
	assert.False(t, mr.Exists(repo.key(s.ID)))
}
