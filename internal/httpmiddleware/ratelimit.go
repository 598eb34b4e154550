package httpmiddleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a request from a client key may proceed.
type Limiter interface {
	Allow(c *gin.Context, key string) bool
}

// RateLimit enforces per-IP limits using the provided limiter.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.Allow(c, ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit"})
			return
		}
		c.Next()
	}
}

// RedisFixedWindow counts requests per key per minute in Redis so the limit
// holds across replicas. Fails open when Redis is unreachable.
type RedisFixedWindow struct {
	client *redis.Client
	perMin int
}

func NewRedisFixedWindow(client *redis.Client, perMinute int) *RedisFixedWindow {
	return &RedisFixedWindow{client: client, perMin: perMinute}
}

func (l *RedisFixedWindow) Allow(c *gin.Context, key string) bool {
	ctx := c.Request.Context()
	window := time.Now().Unix() / 60
	bucket := "ratelimit:" + key + ":" + strconv.FormatInt(window, 10)

	n, err := l.client.Incr(ctx, bucket).Result()
	if err != nil {
		return true
	}
	if n == 1 {
		l.client.Expire(ctx, bucket, 2*time.Minute)
	}
	return n <= int64(l.perMin)
}

// SimpleTokenBucket is the in-memory fallback used when Redis is not
// configured (single-instance deployments).
type SimpleTokenBucket struct {
	capacity int
	rate     int
	mu       sync.Mutex
	state    map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewSimpleTokenBucket creates limiter with capacity tokens and rate per minute.
func NewSimpleTokenBucket(capacity, perMinute int) *SimpleTokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &SimpleTokenBucket{
		capacity: capacity,
		rate:     perMinute,
		state:    make(map[string]*bucket),
	}
}

func (l *SimpleTokenBucket) Allow(_ *gin.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.state[key]
	now := time.Now()
	if !ok {
		b = &bucket{tokens: l.capacity - 1, last: now}
		l.state[key] = b
		return true
	}
	elapsed := now.Sub(b.last).Minutes()
	refill := int(elapsed * float64(l.rate))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
