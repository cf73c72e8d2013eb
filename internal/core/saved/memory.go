package saved

import (
	"context"
	"sync"

	"recipe-forge/internal/core/recipe"
)

// MemoryStore 存在程序記憶體中的收藏清單
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]recipe.Record
}

// NewMemoryStore 創建記憶體收藏清單
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]recipe.Record)}
}

var _ Store = (*MemoryStore)(nil)

// Add 加入收藏
func (s *MemoryStore) Add(ctx context.Context, session string, r recipe.Record) (bool, error) {
	if session == "" {
		return false, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sessions[session] {
		if existing.Title == r.Title {
			return false, nil
		}
	}
	s.sessions[session] = append(s.sessions[session], r.Clone())
	return true, nil
}

// Remove 移除收藏
func (s *MemoryStore) Remove(ctx context.Context, session, title string) error {
	if session == "" {
		return ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sessions[session]
	kept := items[:0]
	for _, r := range items {
		if r.Title != title {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		delete(s.sessions, session)
		return nil
	}
	s.sessions[session] = kept
	return nil
}

// List 列出收藏
func (s *MemoryStore) List(ctx context.Context, session string) ([]recipe.Record, error) {
	if session == "" {
		return nil, ErrNoSession
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.sessions[session]
	out := make([]recipe.Record, len(items))
	for i, r := range items {
		out[i] = r.Clone()
	}
	return out, nil
}
