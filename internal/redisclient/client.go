package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

func (c *Client) span(ctx context.Context, op, key string) (context.Context, trace.Span, time.Time) {
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+op,
		trace.WithAttributes(
			attribute.String("redis.key", key),
			attribute.String("redis.operation", op),
			attribute.String("redis.client", "app-login-gateway"),
		),
	)
	return ctx, span, time.Now()
}

func finish(span trace.Span, start time.Time, err error) {
	span.SetAttributes(attribute.Int64("redis.duration_ms", time.Since(start).Milliseconds()))
	// redis.Nil is an expected miss, not a failure
	if err != nil && err != redis.Nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "success")
	}
	span.End()
}

// Get wraps Redis Get with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	ctx, span, start := c.span(ctx, "get", key)
	cmd := c.cmdable.Get(ctx, key)
	finish(span, start, cmd.Err())
	return cmd
}

// Set wraps Redis Set with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ctx, span, start := c.span(ctx, "set", key)
	span.SetAttributes(attribute.String("redis.expiration", expiration.String()))
	cmd := c.cmdable.Set(ctx, key, value, expiration)
	finish(span, start, cmd.Err())
	return cmd
}

// Del wraps Redis Del with tracing
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	ctx, span, start := c.span(ctx, "del", key)
	cmd := c.cmdable.Del(ctx, keys...)
	finish(span, start, cmd.Err())
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	ctx, span, start := c.span(ctx, "ping", "")
	cmd := c.cmdable.Ping(ctx)
	finish(span, start, cmd.Err())
	return cmd
}
