package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SimplyHuzu/body-works-gym-rep/pkg/response"
)

const (
	// IdempotencyKeyHeader is the header name for the idempotency key
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// DefaultIdempotencyTTL is how long completed responses are replayable.
	// Short-lived on purpose: this covers network retries, not long-term dedup.
	DefaultIdempotencyTTL = 5 * time.Minute
	// idempotencyKeyPrefix namespaces idempotency records in Redis
	idempotencyKeyPrefix = "idempotency:"
)

// IdempotencyStatus represents the state of an idempotency record
type IdempotencyStatus string

const (
	StatusProcessing IdempotencyStatus = "processing"
	StatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the outcome of an idempotent request
type IdempotencyRecord struct {
	Key          string            `json:"key"`
	Status       IdempotencyStatus `json:"status"`
	ResponseCode int               `json:"response_code"`
	ResponseBody string            `json:"response_body"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RedisClient is the subset of redis operations the middleware needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated X-Idempotency-Key.
// Requests without the header pass through untouched: deduplication is strictly
// caller-supplied, the core treats every call as a new attempt.
func Idempotency(client RedisClient, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		redisKey := idempotencyKeyPrefix + key

		placeholder, _ := json.Marshal(IdempotencyRecord{
			Key:       key,
			Status:    StatusProcessing,
			CreatedAt: time.Now(),
		})

		acquired, err := client.SetNX(ctx, redisKey, placeholder, ttl).Result()
		if err != nil {
			// Redis being down must not block bookings
			c.Next()
			return
		}

		if !acquired {
			raw, err := client.Get(ctx, redisKey).Result()
			if err != nil {
				c.Next()
				return
			}

			var record IdempotencyRecord
			if err := json.Unmarshal([]byte(raw), &record); err != nil {
				c.Next()
				return
			}

			if record.Status == StatusProcessing {
				response.Error(c, http.StatusConflict, "REQUEST_IN_PROGRESS",
					"a request with this idempotency key is still being processed", "")
				c.Abort()
				return
			}

			c.Data(record.ResponseCode, "application/json", []byte(record.ResponseBody))
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		record, _ := json.Marshal(IdempotencyRecord{
			Key:          key,
			Status:       StatusCompleted,
			ResponseCode: writer.Status(),
			ResponseBody: writer.body.String(),
			CreatedAt:    time.Now(),
		})
		_ = client.Set(ctx, redisKey, record, ttl).Err()
	}
}
