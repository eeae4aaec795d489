package usercontext

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_MissingUserGetsFreshContext(t *testing.T) {
	s := NewMemoryStore()
	uc, err := s.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", uc.UserID)
	require.Empty(t, uc.History)
	require.NotNil(t, uc.Preferences)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	uc := New("u1")
	uc.AppendTurn(RoleUser, "hello", now)
	uc.AppendTurn(RoleAssistant, "hi there", now)
	uc.Location = "Rome"
	uc.Preferences["cuisine"] = "italian"
	require.NoError(t, s.Put(ctx, uc))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, uc.History, got.History)
	require.Equal(t, "Rome", got.Location)
	require.Equal(t, "italian", got.Preferences["cuisine"])
	require.True(t, got.LastInteraction.Equal(now))
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	uc := New("u1")
	uc.AppendTurn(RoleUser, "hello", time.Now())
	require.NoError(t, s.Put(ctx, uc))

	first, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	first.AppendTurn(RoleAssistant, "mutated", time.Now())
	first.Preferences["k"] = "v"

	second, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, second.History, 1)
	require.Empty(t, second.Preferences)
}

func TestAppendTurn_CapsHistory(t *testing.T) {
	uc := New("u1")
	for i := 0; i < maxHistory+10; i++ {
		uc.AppendTurn(RoleUser, "turn", time.Now())
	}
	require.Len(t, uc.History, maxHistory)
}

func TestLastTurns(t *testing.T) {
	uc := New("u1")
	now := time.Now()
	uc.AppendTurn(RoleUser, "one", now)
	uc.AppendTurn(RoleAssistant, "two", now)
	uc.AppendTurn(RoleUser, "three", now)

	got := uc.LastTurns(2)
	require.Equal(t, []Turn{{RoleAssistant, "two"}, {RoleUser, "three"}}, got)
	require.Len(t, uc.LastTurns(10), 3)
	require.Nil(t, uc.LastTurns(0))
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb, time.Hour)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_MissingUserGetsFreshContext(t *testing.T) {
	s, _ := newRedisStore(t)
	uc, err := s.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", uc.UserID)
	require.Empty(t, uc.History)
}

func TestRedisStore_RoundTripWithTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	uc := New("u1")
	uc.AppendTurn(RoleUser, "find me a flight", now)
	uc.Preferences["seat"] = "aisle"
	require.NoError(t, s.Put(ctx, uc))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, uc.History, got.History)
	require.Equal(t, "aisle", got.Preferences["seat"])

	require.Greater(t, mr.TTL("jetzy:context:u1"), time.Duration(0))
}

func TestRedisStore_ExpiredContextComesBackEmpty(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	uc := New("u1")
	uc.AppendTurn(RoleUser, "hello", time.Now())
	require.NoError(t, s.Put(ctx, uc))

	mr.FastForward(2 * time.Hour)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, got.History)
}
