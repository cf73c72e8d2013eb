package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-forge/internal/core/ai/cache"
	"recipe-forge/internal/core/ai/provider"
	"recipe-forge/internal/core/ai/queue"
	"recipe-forge/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*provider.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) GetModel() string          { return "test-model" }
func (m *mockProvider) GetTimeout() time.Duration { return time.Second }
func (m *mockProvider) Close() error              { return nil }

var testConfig = config.OpenRouterConfig{MaxTokens: 500, Temperature: 0.7}

func TestComplete_CachesResult(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.MatchedBy(func(req *provider.Request) bool {
		return req.MaxTokens == 500 && req.Messages[0].Content == "prompt"
	})).Return(&provider.Response{Content: "  Title: Soup \n"}, nil).Once()

	c := cache.NewManager(config.CacheConfig{MaxSize: 10, TTL: time.Minute})
	svc := NewService(testConfig, p, c, nil)
	defer svc.Close()

	first, err := svc.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Title: Soup", first)

	second, err := svc.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	p.AssertNumberOfCalls(t, "Generate", 1)
}

func TestComplete_ProviderError(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	svc := NewService(testConfig, p, nil, nil)
	_, err := svc.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestComplete_EmptyContent(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.Anything).Return(&provider.Response{Content: "   "}, nil)

	svc := NewService(testConfig, p, nil, nil)
	_, err := svc.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, provider.ErrEmptyCompletion)
}

func TestComplete_Disabled(t *testing.T) {
	svc := NewService(testConfig, nil, nil, nil)
	_, err := svc.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrDisabled)

	var nilSvc *Service
	_, err = nilSvc.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestComplete_ThroughQueue(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.Anything).Return(&provider.Response{Content: "Title: Stew"}, nil)

	q := queue.NewManager(config.QueueConfig{Workers: 1, MaxSize: 2})
	svc := NewService(testConfig, p, nil, q)
	defer svc.Close()

	content, err := svc.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Title: Stew", content)
	assert.Equal(t, 1, q.GetQueueStatus().ProcessedCount)
}
