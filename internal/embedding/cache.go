package embedding

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

// Cache stores vectors by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Set(ctx context.Context, key string, vec []float32) error
}

type MemoryCache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{vectors: map[string][]float32{}}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]float32, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vec, ok := c.vectors[key]
	return vec, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, vec []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.vectors[key] = vec
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.vectors)
}

const redisKeyPrefix = "gofigure:embedding:"

// RedisCache shares vectors between processes. Values are little-endian
// float32 arrays.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	vec, err := decodeVector(raw)
	if err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, vec []float32) error {
	if err := c.client.Set(ctx, redisKeyPrefix+key, encodeVector(vec), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("corrupt cached vector of %d bytes", len(raw))
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return vec, nil
}

// CachedEmbedder embeds each distinct text once per model.
type CachedEmbedder struct {
	inner  Embedder
	cache  Cache
	logger *logger.Log
}

func NewCachedEmbedder(inner Embedder, cache Cache) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: cache, logger: logger.New()}
}

func (e *CachedEmbedder) Name() string {
	return e.inner.Name()
}

// Embed falls through to the wrapped embedder when the cache fails.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := CacheKey(e.inner.Name(), text)

	vec, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.WithError(err).Warn("Embedding cache read failed")
	} else if ok {
		return vec, nil
	}

	vec, err = e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(ctx, key, vec); err != nil {
		e.logger.WithError(err).Warn("Embedding cache write failed")
	}
	return vec, nil
}

// CacheKey is the embedder name plus the SHA-1 of the text.
func CacheKey(name, text string) string {
	sum := sha1.Sum([]byte(text))
	return name + ":" + hex.EncodeToString(sum[:])
}
