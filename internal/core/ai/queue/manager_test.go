package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-forge/internal/core/ai/provider"
	"recipe-forge/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Do(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 2, MaxSize: 4})
	defer m.Close()

	resp, err := m.Do(context.Background(), func(ctx context.Context) (*provider.Response, error) {
		return &provider.Response{Content: "ok"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)

	_, err = m.Do(context.Background(), func(ctx context.Context) (*provider.Response, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")

	assert.Equal(t, 2, m.GetQueueStatus().ProcessedCount)
}

func TestManager_Full(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1})
	defer m.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	blocking := func(ctx context.Context) (*provider.Response, error) {
		close(started)
		<-release
		return &provider.Response{}, nil
	}

	go func() { _, _ = m.Do(context.Background(), blocking) }()
	<-started

	// worker 忙碌中，第二個請求佔滿佇列
	go func() {
		_, _ = m.Do(context.Background(), func(ctx context.Context) (*provider.Response, error) {
			return &provider.Response{}, nil
		})
	}()
	require.Eventually(t, func() bool { return m.GetQueueStatus().QueueLength == 1 }, time.Second, time.Millisecond)

	_, err := m.Do(context.Background(), blocking)
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
}

func TestManager_ContextCanceled(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1})
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Do(ctx, func(ctx context.Context) (*provider.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManager_Closed(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1})
	m.Close()
	m.Close()

	_, err := m.Do(context.Background(), func(ctx context.Context) (*provider.Response, error) {
		return &provider.Response{}, nil
	})
	assert.ErrorIs(t, err, ErrQueueClosed)
}
