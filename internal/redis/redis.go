package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/otp"
)

// Client stores OTP records as JSON under otp:<namespace>:<phone> with a
// TTL, so expired codes disappear without a sweeper.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ otp.Store = (*Client)(nil)

func NewClient(cfg *config.Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return &Client{rdb: rdb, ttl: cfg.OTPTTL}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func otpKey(ns otp.Namespace, phone string) string {
	return fmt.Sprintf("otp:%s:%s", ns, phone)
}

// Replace overwrites any earlier record for the phone.
func (c *Client) Replace(ctx context.Context, ns otp.Namespace, rec models.OTPRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode otp record: %w", err)
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := c.rdb.Set(ctx, otpKey(ns, rec.Phone), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, ns otp.Namespace, phone string) (*models.OTPRecord, error) {
	raw, err := c.rdb.Get(ctx, otpKey(ns, phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, otp.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read otp: %w", err)
	}

	var rec models.OTPRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("invalid otp record: %w", err)
	}
	return &rec, nil
}

// MarkVerified flips the verified flag and keeps the remaining TTL. The
// key is watched so a concurrent Replace is not overwritten.
func (c *Client) MarkVerified(ctx context.Context, ns otp.Namespace, phone string) error {
	key := otpKey(ns, phone)
	return c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return otp.ErrNotFound
		}
		if err != nil {
			return err
		}

		var rec models.OTPRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("invalid otp record: %w", err)
		}
		rec.Verified = true
		payload, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, redis.KeepTTL)
			return nil
		})
		return err
	}, key)
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
