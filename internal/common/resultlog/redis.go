package resultlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"minnow/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes run records to Redis:
//
//	SET     <ns>:stage:<task>:last <json> EX <ttl>   for polling
//	PUBLISH <ns>:stage:<task>      <json>            for subscribers
type RedisPublisher struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisPublisher creates a publisher from configuration
func NewRedisPublisher(cfg config.RedisConfig) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return NewRedisPublisherWithClient(client, cfg.Namespace, time.Duration(cfg.TTL)*time.Second)
}

func NewRedisPublisherWithClient(client *redis.Client, namespace string, ttl time.Duration) *RedisPublisher {
	return &RedisPublisher{client: client, namespace: namespace, ttl: ttl}
}

func (p *RedisPublisher) StateKey(taskType string) string {
	return fmt.Sprintf("%s:stage:%s:last", p.namespace, taskType)
}

func (p *RedisPublisher) Channel(taskType string) string {
	return fmt.Sprintf("%s:stage:%s", p.namespace, taskType)
}

func (p *RedisPublisher) Record(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	if err := p.client.Set(ctx, p.StateKey(record.TaskType), payload, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}

	if err := p.client.Publish(ctx, p.Channel(record.TaskType), payload).Err(); err != nil {
		return fmt.Errorf("redis PUBLISH failed: %w", err)
	}

	return nil
}

// Ping checks the connection
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
