// Package cache keeps exam snapshots fetched from the exam API in Redis.
// A nil Redis client disables caching and every call goes upstream.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/config"
	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "seatplan:exam:"

// Source fetches exam snapshots
type Source interface {
	ExamSnapshot(ctx context.Context, examID int) (*models.ExamData, error)
}

// NewRedisClient connects to Redis and pings it. It returns nil when no address
// is configured or the server cannot be reached.
func NewRedisClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, snapshot cache disabled: %v", cfg.RedisAddr, err)
		client.Close()
		return nil
	}
	return client
}

// SnapshotSource serves exam snapshots from Redis, falling back to the wrapped source
type SnapshotSource struct {
	src    Source
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotSource wraps src with a Redis cache. client may be nil.
func NewSnapshotSource(src Source, client *redis.Client, ttl time.Duration) *SnapshotSource {
	return &SnapshotSource{src: src, client: client, ttl: ttl}
}

func key(examID int) string {
	return fmt.Sprintf("%s%d", keyPrefix, examID)
}

// ExamSnapshot returns the cached snapshot of an exam or fetches and stores it
func (s *SnapshotSource) ExamSnapshot(ctx context.Context, examID int) (*models.ExamData, error) {
	if s.client == nil {
		return s.src.ExamSnapshot(ctx, examID)
	}

	raw, err := s.client.Get(ctx, key(examID)).Bytes()
	switch {
	case err == nil:
		var data models.ExamData
		if jerr := json.Unmarshal(raw, &data); jerr == nil {
			return &data, nil
		}
		log.Printf("cache: dropping unreadable snapshot of exam %d", examID)
	case err != redis.Nil:
		log.Printf("cache: get exam %d: %v", examID, err)
	}

	data, err := s.src.ExamSnapshot(ctx, examID)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(data); jerr == nil {
		if serr := s.client.Set(ctx, key(examID), payload, s.ttl).Err(); serr != nil {
			log.Printf("cache: set exam %d: %v", examID, serr)
		}
	}
	return data, nil
}

// Invalidate drops the cached snapshot of an exam
func (s *SnapshotSource) Invalidate(ctx context.Context, examID int) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, key(examID)).Err()
}
