package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Cache 補全結果快取
//
// 未命中時 Get 回傳 common.ErrCacheMiss。
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key 以模型與提示詞產生快取鍵
func Key(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + prompt))
	return fmt.Sprintf("completion:%s", hex.EncodeToString(hash[:]))
}
