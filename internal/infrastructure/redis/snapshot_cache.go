package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperm "github.com/jhoicas/Estoque-api/internal/application/permission"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
)

var _ apperm.SnapshotCache = (*SnapshotCache)(nil)

// DefaultTTL vida de un snapshot cuando la configuración no indica otra.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "perm:snapshot:"

// SnapshotCache guarda el Snapshot de permisos por usuario como JSON con TTL.
// Cualquier escritura de permisos llama Invalidate; el TTL acota lo que sobreviva a un fallo de invalidación.
type SnapshotCache struct {
	store kv
	ttl   time.Duration
}

// NewSnapshotCache usa el cliente dado; ttl <= 0 toma DefaultTTL.
func NewSnapshotCache(rdb *redis.Client, ttl time.Duration) *SnapshotCache {
	return newSnapshotCache(redisKV{rdb: rdb}, ttl)
}

func newSnapshotCache(store kv, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{store: store, ttl: ttl}
}

// Get devuelve (nil, false, nil) si no hay entrada. Un valor corrupto se borra y cuenta como ausente.
func (c *SnapshotCache) Get(ctx context.Context, userID string) (*domperm.Snapshot, bool, error) {
	raw, ok, err := c.store.get(ctx, key(userID))
	if err != nil {
		return nil, false, fmt.Errorf("redis get snapshot: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var s domperm.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		_ = c.store.del(ctx, key(userID))
		return nil, false, nil
	}
	return &s, true, nil
}

// Set guarda el snapshot con el TTL configurado.
func (c *SnapshotCache) Set(ctx context.Context, s domperm.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.store.set(ctx, key(s.UserID), data, c.ttl); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

// Invalidate borra el snapshot del usuario.
func (c *SnapshotCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.store.del(ctx, key(userID)); err != nil {
		return fmt.Errorf("redis del snapshot: %w", err)
	}
	return nil
}

func key(userID string) string {
	return keyPrefix + userID
}
