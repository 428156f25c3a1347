package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/loan"
)

// statsKey 借阅统计缓存键
const statsKey = "library:loan_stats"

// StatsCache 借阅统计缓存
// 设计说明：
// 1. 统计是全表聚合，读多写少，短TTL缓存即可显著降库压
// 2. 任何账本写入都调用Invalidate，缓存只是加速，不是真值
// 3. Redis故障时降级为直查数据库，只记日志不报错
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache 创建统计缓存
// ttl<=0表示禁用缓存
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get 读取缓存的统计快照，未命中返回(nil, nil)
func (c *StatsCache) Get(ctx context.Context) (*loan.Stats, error) {
	if c.ttl <= 0 {
		return nil, nil
	}

	data, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		// 缓存故障降级直查，不向上报错
		zap.L().Warn("读取统计缓存失败", zap.Error(err))
		return nil, nil
	}

	var stats loan.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		zap.L().Warn("统计缓存损坏，忽略", zap.Error(err))
		return nil, nil
	}

	return &stats, nil
}

// Set 写入统计快照
func (c *StatsCache) Set(ctx context.Context, stats *loan.Stats) {
	if c.ttl <= 0 {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, data, c.ttl).Err(); err != nil {
		zap.L().Warn("写入统计缓存失败", zap.Error(err))
	}
}

// Invalidate 账本写入后使缓存失效
func (c *StatsCache) Invalidate(ctx context.Context) {
	if c.ttl <= 0 {
		return
	}
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		zap.L().Warn("清理统计缓存失败", zap.Error(err))
	}
}
