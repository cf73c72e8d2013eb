package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"recipe-forge/internal/core/ai/provider"
	"recipe-forge/internal/infrastructure/config"
	"recipe-forge/internal/pkg/common"

	"go.uber.org/zap"
)

// 佇列錯誤
var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue manager is closed")
)

// Call 在 worker 中執行的提供者呼叫
type Call func(ctx context.Context) (*provider.Response, error)

// Request 隊列請求
type Request struct {
	Context context.Context
	Call    Call
	Result  chan Result
}

// Result 處理結果
type Result struct {
	Response *provider.Response
	Error    error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Manager 以固定數量 worker 處理外部呼叫，限制同時連線數
type Manager struct {
	config    config.QueueConfig
	queue     chan *Request
	processed int64
	mu        sync.RWMutex
	closed    bool
	wg        sync.WaitGroup
}

// NewManager 創建隊列管理器並啟動 worker
func NewManager(cfg config.QueueConfig) *Manager {
	m := &Manager{
		config: cfg,
		queue:  make(chan *Request, cfg.MaxSize),
	}

	for i := 0; i < cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}

	common.LogInfo("工作佇列已啟動",
		zap.Int("workers", cfg.Workers),
		zap.Int("max_queue_size", cfg.MaxSize),
	)
	return m
}

// Do 排入呼叫並等待結果；佇列已滿時立即回傳 ErrQueueFull
func (m *Manager) Do(ctx context.Context, call Call) (*provider.Response, error) {
	req := &Request{
		Context: ctx,
		Call:    call,
		Result:  make(chan Result, 1),
	}

	if err := m.enqueue(req); err != nil {
		return nil, err
	}

	select {
	case res := <-req.Result:
		return res.Response, res.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Manager) enqueue(req *Request) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrQueueClosed
	}

	select {
	case m.queue <- req:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
		return nil
	default:
		common.LogWarn("工作佇列已滿", zap.Int("max_queue_size", m.config.MaxSize))
		return ErrQueueFull
	}
}

func (m *Manager) worker() {
	defer m.wg.Done()

	for req := range m.queue {
		// 等待期間已取消的請求不再呼叫
		if err := req.Context.Err(); err != nil {
			req.Result <- Result{Error: err}
			continue
		}

		resp, err := req.Call(req.Context)
		atomic.AddInt64(&m.processed, 1)
		req.Result <- Result{Response: resp, Error: err}
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		MaxQueueSize:   m.config.MaxSize,
		Workers:        m.config.Workers,
	}
}

// Close 停止接收新請求，等待已排入的請求處理完
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	m.wg.Wait()
}
