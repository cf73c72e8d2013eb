package saved

import (
	"context"
	"errors"

	"recipe-forge/internal/core/recipe"
)

// ErrNoSession 缺少 session 識別
var ErrNoSession = errors.New("session id is required")

// Store 每個 session 的收藏清單
//
// 同一 session 內以標題去重，依加入順序列出。
type Store interface {
	// Add 已有相同標題時回傳 false
	Add(ctx context.Context, session string, r recipe.Record) (bool, error)
	// Remove 移除指定標題；不存在時不視為錯誤
	Remove(ctx context.Context, session, title string) error
	List(ctx context.Context, session string) ([]recipe.Record, error)
}
