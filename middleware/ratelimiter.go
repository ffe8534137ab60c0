package middleware

import (
	"net/http"
	"time"

	"github.com/CorrelAid/student_payment_form/models"
	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/gin-gonic/gin"
)

const CapacityMessage = "The API is at capacity, try again later."

// RateLimitMiddleware allows maxRequests per minute per client IP.
func RateLimitMiddleware(maxRequests float64) gin.HandlerFunc {
	perSecond := maxRequests / 60.0
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Minute})

	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})

	return func(c *gin.Context) {
		httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request)
		if httpError != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.Message{Message: CapacityMessage})
			return
		}
		c.Next()
	}
}
