package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
)

// Stream names
const (
	GamesStream     = "league.games"
	StandingsStream = "league.standings"
)

// streamMaxLen caps each stream so idle consumers cannot grow it unbounded
const streamMaxLen = 10000

// RedisPublisher publishes league events to Redis streams
type RedisPublisher struct {
	client *redis.Client
}

var _ service.EventSink = (*RedisPublisher)(nil)

// NewRedisPublisher connects to Redis and verifies the connection
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisStreamPublisher(client), nil
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// HealthCheck pings Redis to verify connection
func (rp *RedisPublisher) HealthCheck(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

// PublishGameEvent appends a game change to the games stream
func (rp *RedisPublisher) PublishGameEvent(ctx context.Context, event service.GameEvent) error {
	return rp.publish(ctx, GamesStream, event)
}

// PublishStandings appends a full standings snapshot to the standings stream
func (rp *RedisPublisher) PublishStandings(ctx context.Context, rows []standings.Row) error {
	return rp.publish(ctx, StandingsStream, rows)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", stream, err)
	}

	err = rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", stream, err)
	}
	return nil
}
