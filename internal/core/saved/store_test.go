package saved

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"recipe-forge/internal/core/recipe"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savedRecord(title string) recipe.Record {
	return recipe.Record{
		ID:           uuid.NewString(),
		Title:        title,
		Ingredients:  recipe.StringList{"2 cups rice"},
		Instructions: recipe.StringList{"Cook"},
		CookingTime:  30,
		Difficulty:   recipe.DifficultyEasy,
		Servings:     4,
	}
}

func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	session := uuid.NewString()
	other := uuid.NewString()

	list, err := store.List(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, list)

	added, err := store.Add(ctx, session, savedRecord("Rice Bowl"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Add(ctx, session, savedRecord("Rice Bowl"))
	require.NoError(t, err)
	assert.False(t, added, "duplicate titles are ignored")

	added, err = store.Add(ctx, session, savedRecord("Bean Toast"))
	require.NoError(t, err)
	assert.True(t, added)

	list, err = store.List(ctx, session)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rice Bowl", list[0].Title)
	assert.Equal(t, "Bean Toast", list[1].Title)

	list, err = store.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list, "sessions are isolated")

	require.NoError(t, store.Remove(ctx, session, "Rice Bowl"))
	require.NoError(t, store.Remove(ctx, session, "never saved"))

	list, err = store.List(ctx, session)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bean Toast", list[0].Title)

	require.NoError(t, store.Remove(ctx, session, "Bean Toast"))

	// 同標題併發加入只會成功一次
	var wg sync.WaitGroup
	var addedCount int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Add(ctx, session, savedRecord("Sweet/Sour Chicken"))
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&addedCount, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), addedCount)

	list, err = store.List(ctx, session)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sweet/Sour Chicken", list[0].Title)
	require.NoError(t, store.Remove(ctx, session, "Sweet/Sour Chicken"))

	_, err = store.Add(ctx, "", savedRecord("x"))
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = store.List(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, store.Remove(ctx, "", "x"), ErrNoSession)
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Add(ctx, "s", savedRecord("Rice Bowl"))
	require.NoError(t, err)

	list, err := store.List(ctx, "s")
	require.NoError(t, err)
	list[0].Ingredients[0] = "changed"

	list, err = store.List(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "2 cups rice", list[0].Ingredients[0])
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	store := NewRedisStore(client, time.Minute)
	runStoreContract(t, store)

	ctx := context.Background()
	session := uuid.NewString()
	for _, title := range []string{"Rice Bowl", "Rice Bowl", "Bean Toast"} {
		_, err := store.Add(ctx, session, savedRecord(title))
		require.NoError(t, err)
	}
	// hash 與順序 list 保持一致
	assert.Equal(t, int64(2), client.HLen(ctx, itemsKey(session)).Val())
	assert.Equal(t, int64(2), client.LLen(ctx, orderKey(session)).Val())
	assert.Greater(t, client.TTL(ctx, orderKey(session)).Val(), time.Duration(0))
}
