package laboratory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

const (
	defaultTTL   = 5 * time.Minute
	keyActiveAll = "labres:laboratories:active"
)

// Store источник справочника лабораторий
type Store interface {
	ListActive(ctx context.Context) ([]*domain.Laboratory, error)
	GetByID(ctx context.Context, id int64) (*domain.Laboratory, error)
	GetByName(ctx context.Context, name string) (*domain.Laboratory, error)
	CountActive(ctx context.Context) (int, error)
}

// KV минимальный набор команд Redis, которым пользуется кэш
// *redis.Client его реализует
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэширует список активных лабораторий в Redis
//
// Кэшируется только справочник. Занятость слотов никогда не кэшируется.
// Если Redis не настроен (kv == nil) или недоступен, запросы идут напрямую в Store.
type Cache struct {
	Store
	kv     KV
	ttl    time.Duration
	logger Logger
}

// New оборачивает store кэшем
func New(store Store, kv KV, ttl time.Duration, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		Store:  store,
		kv:     kv,
		ttl:    ttl,
		logger: logger,
	}
}

// ListActive список активных лабораторий из кэша или из Store
func (c *Cache) ListActive(ctx context.Context) ([]*domain.Laboratory, error) {
	if c.kv == nil {
		return c.Store.ListActive(ctx)
	}

	raw, err := c.kv.Get(ctx, keyActiveAll).Bytes()
	switch {
	case err == nil:
		var labs []*domain.Laboratory
		if err := json.Unmarshal(raw, &labs); err == nil {
			return labs, nil
		}
		c.logger.Warn("LaboratoryCache: corrupted entry %s, reloading", keyActiveAll)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("LaboratoryCache: redis get failed: %v", err)
	}

	labs, err := c.Store.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(labs)
	if err != nil {
		c.logger.Warn("LaboratoryCache: marshal failed: %v", err)
		return labs, nil
	}
	if err := c.kv.Set(ctx, keyActiveAll, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("LaboratoryCache: redis set failed: %v", err)
	}

	return labs, nil
}
