package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency makes POSTs carrying an Idempotency-Key safe to retry: a
// replay within the cache window returns the first response, and a racing
// duplicate is rejected while the original is still in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		employeeID := c.GetString("employee_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), employeeID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Abort()
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}

		// Short expiry so a crashed worker cannot wedge the key forever.
		acquired, _ := rdb.SetNX(ctx, lockKey, "locked", 30*time.Second).Result()
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":   "Request with this idempotency key is already being processed",
				"details": gin.H{},
			})
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			rdb.Set(ctx, cacheKey, recorder.buf.String(), 24*time.Hour)
		}
		rdb.Del(ctx, lockKey)
	}
}
