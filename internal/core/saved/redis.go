package saved

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipe-forge/internal/core/recipe"
	"recipe-forge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 儲存的收藏清單
//
// 每個 session 使用一個 hash（標題 -> JSON）與一個 list（加入順序），
// 兩者在同一個交易內寫入，並在新增後重設 TTL。
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 創建 Redis 收藏清單
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

// maxTxRetries 同一 session 併發寫入時的樂觀鎖重試次數
const maxTxRetries = 5

func itemsKey(session string) string { return "recipe-forge:saved:" + session + ":items" }
func orderKey(session string) string { return "recipe-forge:saved:" + session + ":order" }

// Add 加入收藏
func (s *RedisStore) Add(ctx context.Context, session string, r recipe.Record) (bool, error) {
	if session == "" {
		return false, ErrNoSession
	}

	data, err := json.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("marshal saved recipe: %w", err)
	}

	items, order := itemsKey(session), orderKey(session)
	added := false
	txf := func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, items, r.Title).Result()
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		// hash 與順序 list 在同一個 MULTI 內寫入
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, items, r.Title, data)
			pipe.RPush(ctx, order, r.Title)
			if s.ttl > 0 {
				pipe.Expire(ctx, items, s.ttl)
				pipe.Expire(ctx, order, s.ttl)
			}
			return nil
		})
		if err == nil {
			added = true
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err = s.client.Watch(ctx, txf, items)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
		common.LogDebug("收藏寫入衝突，重試", zap.String("title", r.Title), zap.Int("attempt", i+1))
	}
	if err != nil {
		return false, fmt.Errorf("save recipe: %w", err)
	}
	return added, nil
}

// Remove 移除收藏
func (s *RedisStore) Remove(ctx context.Context, session, title string) error {
	if session == "" {
		return ErrNoSession
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, itemsKey(session), title)
		pipe.LRem(ctx, orderKey(session), 0, title)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove saved recipe: %w", err)
	}
	return nil
}

// List 列出收藏
func (s *RedisStore) List(ctx context.Context, session string) ([]recipe.Record, error) {
	if session == "" {
		return nil, ErrNoSession
	}

	titles, err := s.client.LRange(ctx, orderKey(session), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list saved recipes: %w", err)
	}
	records := make([]recipe.Record, 0, len(titles))
	if len(titles) == 0 {
		return records, nil
	}

	values, err := s.client.HMGet(ctx, itemsKey(session), titles...).Result()
	if err != nil {
		return nil, fmt.Errorf("load saved recipes: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var r recipe.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			common.LogWarn("收藏資料損毀，略過", zap.String("title", titles[i]), zap.Error(err))
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
