package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafe/handcraft/channel/internal/hub"
	"github.com/shafe/handcraft/channel/pkg/response"
	commonErrors "github.com/shafe/handcraft/internal/errors"
)

var (
	seedUserMina = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	seedUserRafi = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	seedPostID   = uuid.MustParse("77777777-7777-4777-8777-777777777777")
)

func subscribeEvents(t *testing.T, c context.Context, env testEnv) <-chan *redis.Message {
	t.Helper()

	sub := env.cache.Subscribe(c, hub.EventsChannel)
	t.Cleanup(func() { sub.Close() })
	if _, err := sub.Receive(c); err != nil {
		t.Fatalf("failed subscribing to events with error: %s", err)
	}
	return sub.Channel()
}

func TestLikePostIsIdempotent(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)
	events := subscribeEvents(t, c, env)

	require.NoError(t, env.service.LikePost(c, seedUserRafi, seedPostID))
	require.NoError(t, env.service.LikePost(c, seedUserRafi, seedPostID))

	likes, err := env.queries.CountPostLikes(c, seedPostID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	select {
	case msg := <-events:
		event := response.Event{}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, EventLike, event.Kind)
		assert.Equal(t, seedPostID, event.PostID)
		assert.Equal(t, seedUserRafi, event.ActorID)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a like event for the first like")
	}

	// the repeated like is a no-op and publishes nothing
	select {
	case msg := <-events:
		t.Fatalf("expected no event for the repeated like, got payload=%s", msg.Payload)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestUnlikePostWithoutLikeSucceeds(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	require.NoError(t, env.service.UnlikePost(c, seedUserRafi, seedPostID))

	likes, err := env.queries.CountPostLikes(c, seedPostID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)
}

func TestLikeThenUnlikeRemovesLike(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	require.NoError(t, env.service.LikePost(c, seedUserMina, seedPostID))
	require.NoError(t, env.service.UnlikePost(c, seedUserMina, seedPostID))

	likes, err := env.queries.CountPostLikes(c, seedPostID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)
}

func TestLikePostUnknownPost(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	err := env.service.LikePost(c, seedUserRafi, uuid.New())
	assert.ErrorIs(t, err, commonErrors.ErrPostNotFound)
}
