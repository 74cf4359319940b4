package revalidate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeroginaca/threads/internal/cache"
	"github.com/jeroginaca/threads/internal/logger"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *cache.Client) {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	s := miniredis.RunT(t)
	client, err := cache.NewClient(s.Host(), s.Port(), "")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return s, client
}

func TestInvalidateDropsCachedVariants(t *testing.T) {
	s, client := newTestCache(t)
	inv := NewRedisInvalidator(client)
	ctx := context.Background()

	// Query and per-user variants of the same path, plus an unrelated key
	require.NoError(t, s.Set("response:/feed", "page"))
	require.NoError(t, s.Set("response:/feed:page=2", "page2"))
	require.NoError(t, s.Set("response:/feed:page=2:user1", "page2u1"))
	require.NoError(t, s.Set("response:/profile/alice", "other"))

	require.NoError(t, inv.Invalidate(ctx, "/feed"))

	assert.False(t, s.Exists("response:/feed"))
	assert.False(t, s.Exists("response:/feed:page=2"))
	assert.False(t, s.Exists("response:/feed:page=2:user1"))
	assert.True(t, s.Exists("response:/profile/alice"), "unrelated paths stay cached")
}

func TestInvalidatePublishesStalePath(t *testing.T) {
	s, client := newTestCache(t)
	inv := NewRedisInvalidator(client)
	ctx := context.Background()

	sub := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer sub.Close()

	pubsub := sub.Subscribe(ctx, Channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, inv.Invalidate(ctx, "/thread/abc"))

	select {
	case msg := <-pubsub.Channel():
		assert.Equal(t, Channel, msg.Channel)
		assert.Equal(t, "/thread/abc", msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no stale-path announcement received")
	}
}

func TestInvalidateEmptyPathIsNoop(t *testing.T) {
	s, client := newTestCache(t)
	inv := NewRedisInvalidator(client)

	require.NoError(t, s.Set("response:/feed", "page"))
	require.NoError(t, inv.Invalidate(context.Background(), ""))

	assert.True(t, s.Exists("response:/feed"))
}

func TestInvalidateWithNoCachedKeysStillPublishes(t *testing.T) {
	_, client := newTestCache(t)
	inv := NewRedisInvalidator(client)

	// Nothing cached under the path; the announcement still goes out
	require.NoError(t, inv.Invalidate(context.Background(), "/fresh"))
}

func TestNoopInvalidator(t *testing.T) {
	assert.NoError(t, Noop{}.Invalidate(context.Background(), "/anything"))
}
