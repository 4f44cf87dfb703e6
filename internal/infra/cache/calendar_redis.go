package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
)

const calendarPrefix = "availability:"

// CalendarRedis stores generated calendars as JSON under availability:*
// keys.
type CalendarRedis struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewCalendarRedis(client *redis.Client) *CalendarRedis {
	return &CalendarRedis{client: client}
}

func (c *CalendarRedis) Get(ctx context.Context, key string) ([]availability.DayAvailability, bool, error) {
	val, err := c.client.Get(ctx, calendarPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("calendar cache get: %w", err)
	}

	var days []availability.DayAvailability
	if err := json.Unmarshal(val, &days); err != nil {
		return nil, false, fmt.Errorf("calendar cache decode: %w", err)
	}
	return days, true, nil
}

func (c *CalendarRedis) Set(ctx context.Context, key string, days []availability.DayAvailability, ttl time.Duration) error {
	data, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("calendar cache encode: %w", err)
	}
	if err := c.client.Set(ctx, calendarPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("calendar cache set: %w", err)
	}
	return nil
}

// Purge drops every cached calendar.
func (c *CalendarRedis) Purge(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, calendarPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("calendar cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CalendarRedis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
