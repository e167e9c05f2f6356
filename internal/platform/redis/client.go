package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"attestguard/pkg/serviceerror"
)

// Client wraps the go-redis client with health checking capabilities.
type Client struct {
	*redis.Client
}

// New creates a new Redis client from the given URL.
// Returns nil if the URL is empty (Redis not configured).
func New(url string) (*Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, serviceerror.Configuration("Redis", "invalid REDIS_URL: "+err.Error())
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, serviceerror.Classify("Redis", err)
	}

	return &Client{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return serviceerror.Classify("Redis", c.Ping(ctx).Err())
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.Client.Close()
}
