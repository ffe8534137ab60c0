package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/CorrelAid/student_payment_form/models"
	"github.com/gin-gonic/gin"
)

// DomainWhitelistMiddleware rejects requests whose Host is not listed. An
// empty list lets every host through.
func DomainWhitelistMiddleware(allowedDomains []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(allowedDomains) == 0 {
			c.Next()
			return
		}

		host := c.Request.Host
		allowed := false
		for _, domain := range allowedDomains {
			if strings.EqualFold(domain, host) {
				allowed = true
				break
			}
		}

		if !allowed {
			log.Printf("Host not allowed: host=%s", host)
			c.AbortWithStatusJSON(http.StatusForbidden, models.Message{Message: "Permission denied"})
			return
		}

		c.Next()
	}
}
