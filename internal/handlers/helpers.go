package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"furnimart/internal/ratelimit"
)

// retryAfter sets the Retry-After header for 429 responses, rounded up to
// whole seconds.
func retryAfter(c *gin.Context, l *ratelimit.Limiter, key string) {
	d := l.RetryAfter(key)
	if d <= 0 {
		return
	}
	secs := int(math.Ceil(d.Seconds()))
	c.Header("Retry-After", strconv.Itoa(secs))
}
