package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/curequeue/curequeue-server/internal/models"
)

// queueTTL keeps the public queue board fresh enough while absorbing the
// read traffic from waiting-room displays polling every few seconds.
const queueTTL = 15 * time.Second

// QueueCache is a read-through cache for per-facility queue boards. A nil
// client disables caching entirely, so the API runs without redis.
type QueueCache struct {
	rdb *redis.Client
}

func NewQueueCache(rdb *redis.Client) *QueueCache {
	return &QueueCache{rdb: rdb}
}

func key(facilityID string) string {
	return "queue:" + facilityID
}

func (c *QueueCache) Get(ctx context.Context, facilityID string) (*models.FacilityQueue, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(facilityID)).Bytes()
	if err != nil {
		return nil, false
	}

	var q models.FacilityQueue
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, false
	}
	return &q, true
}

func (c *QueueCache) Set(ctx context.Context, q *models.FacilityQueue) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(q.FacilityID), raw, queueTTL)
}

func (c *QueueCache) Invalidate(ctx context.Context, facilityID string) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(facilityID))
}
