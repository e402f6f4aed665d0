package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

const structureKeyPrefix = "course:structure:"

// StructureCache хранит скелет курса (разделы и главы без контента).
type StructureCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStructureCache(rdb *redis.Client, ttl time.Duration) *StructureCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &StructureCache{rdb: rdb, ttl: ttl}
}

// Get возвращает (nil, nil) при промахе.
func (c *StructureCache) Get(ctx context.Context, courseID string) (*domain.CourseStructure, error) {
	val, err := c.rdb.Get(ctx, structureKeyPrefix+courseID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s domain.CourseStructure
	if err := json.Unmarshal(val, &s); err != nil {
		// Битая запись: удаляем и идём в базу.
		c.rdb.Del(ctx, structureKeyPrefix+courseID)
		return nil, nil
	}
	return &s, nil
}

func (c *StructureCache) Set(ctx context.Context, s *domain.CourseStructure) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, structureKeyPrefix+s.CourseID, data, c.ttl).Err()
}

func (c *StructureCache) Invalidate(ctx context.Context, courseID string) error {
	return c.rdb.Del(ctx, structureKeyPrefix+courseID).Err()
}
