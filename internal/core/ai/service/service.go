package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-forge/internal/core/ai/cache"
	"recipe-forge/internal/core/ai/provider"
	"recipe-forge/internal/core/ai/queue"
	"recipe-forge/internal/infrastructure/config"
	"recipe-forge/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrDisabled 未設定外部 AI 服務
var ErrDisabled = errors.New("ai provider disabled")

// Service AI 服務，先查快取再呼叫提供者
type Service struct {
	config   config.OpenRouterConfig
	provider provider.Provider
	cache    cache.Cache
	queue    *queue.Manager
}

// NewService 創建 AI 服務；cache 與 q 可為 nil
func NewService(cfg config.OpenRouterConfig, p provider.Provider, c cache.Cache, q *queue.Manager) *Service {
	return &Service{
		config:   cfg,
		provider: p,
		cache:    c,
		queue:    q,
	}
}

// Complete 取得提示詞的補全文字
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	if s == nil || s.provider == nil {
		return "", ErrDisabled
	}

	model := s.provider.GetModel()
	key := cache.Key(model, prompt)

	if s.cache != nil {
		if val, err := s.cache.Get(ctx, key); err == nil && val != "" {
			return val, nil
		} else if err != nil && !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.Error(err))
		}
	}

	timeout := s.provider.GetTimeout()
	if timeout <= 0 {
		timeout = s.config.Timeout
	}
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req := provider.UserPrompt(prompt, s.config.MaxTokens, s.config.Temperature)
	call := func(ctx context.Context) (*provider.Response, error) {
		start := time.Now()
		resp, err := s.provider.Generate(ctx, req)
		common.LogAICall(model, time.Since(start), err)
		return resp, err
	}

	var resp *provider.Response
	var err error
	if s.queue != nil {
		resp, err = s.queue.Do(callCtx, call)
	} else {
		resp, err = call(callCtx)
	}
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", provider.ErrEmptyCompletion
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, content); err != nil {
			common.LogWarn("寫入快取失敗", zap.Error(err))
		}
	}

	return content, nil
}

// Close 關閉佇列、提供者與快取
func (s *Service) Close() error {
	if s.queue != nil {
		s.queue.Close()
	}
	var errs []error
	if s.provider != nil {
		errs = append(errs, s.provider.Close())
	}
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	return errors.Join(errs...)
}
