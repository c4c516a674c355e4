package sticker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	qrcode "github.com/skip2/go-qrcode"
)

const qrKeyPrefix = "parms:qr:"

// Cache stores encoded QR PNGs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, png []byte, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, png []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, png, ttl).Err()
}

// QRGenerator encodes lookup URLs; Cache is optional.
type QRGenerator struct {
	Cache Cache
	TTL   time.Duration
	Size  int
}

func NewQRGenerator(cache Cache, ttl time.Duration) *QRGenerator {
	return &QRGenerator{Cache: cache, TTL: ttl, Size: 256}
}

func qrKey(content string, size int) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%s%d:%s", qrKeyPrefix, size, hex.EncodeToString(sum[:]))
}

// PNG returns the QR image for content. Cache failures are logged and the
// image is encoded directly.
func (g *QRGenerator) PNG(ctx context.Context, content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: empty content")
	}
	size := g.Size
	if size <= 0 {
		size = 256
	}
	key := qrKey(content, size)

	if g.Cache != nil {
		b, ok, err := g.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("qr cache get: %v", err)
		} else if ok {
			return b, nil
		}
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	if g.Cache != nil {
		if err := g.Cache.Set(ctx, key, png, g.TTL); err != nil {
			log.Printf("qr cache set: %v", err)
		}
	}
	return png, nil
}
