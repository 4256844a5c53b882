package alias

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix is prepended to the collection names
// to get the keys of the Redis lists and the
// collection column values of the Postgres table.
const KeyPrefix = "alias:"

var _ Store[BlacklistEntry] = new(RedisStore[BlacklistEntry])

// RedisStore keeps the JSON encoded entities
// of a collection in a Redis list.
type RedisStore[E any] struct {
	client *redis.Client
	key    string
}

// NewRedisClient connects to the Redis server at redisURL.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisStore returns a store for the collection
// with the passed name.
func NewRedisStore[E any](client *redis.Client, collection string) *RedisStore[E] {
	return &RedisStore[E]{client: client, key: KeyPrefix + collection}
}

func (s *RedisStore[E]) List(ctx context.Context) ([]E, error) {
	values, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.key, err)
	}
	entities := make([]E, 0, len(values))
	for _, value := range values {
		var entity E
		if err := json.Unmarshal([]byte(value), &entity); err != nil {
			return nil, fmt.Errorf("unmarshal %s entry: %w", s.key, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (s *RedisStore[E]) Add(ctx context.Context, entity E) error {
	value, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s entry: %w", s.key, err)
	}
	if err := s.client.RPush(ctx, s.key, value).Err(); err != nil {
		return fmt.Errorf("add to %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore[E]) Remove(ctx context.Context, entity E) (bool, error) {
	value, err := json.Marshal(entity)
	if err != nil {
		return false, fmt.Errorf("marshal %s entry: %w", s.key, err)
	}
	n, err := s.client.LRem(ctx, s.key, 1, value).Result()
	if err != nil {
		return false, fmt.Errorf("remove from %s: %w", s.key, err)
	}
	return n > 0, nil
}

func (s *RedisStore[E]) Count(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.key, err)
	}
	return int(n), nil
}
