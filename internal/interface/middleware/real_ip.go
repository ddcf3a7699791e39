package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client IP under "real_ip". CF-Connecting-IP wins over the
// left-most X-Forwarded-For entry, then X-Real-IP, then c.ClientIP().
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", realIPFrom(c))
		c.Next()
	}
}

func realIPFrom(c *gin.Context) string {
	candidates := []string{c.GetHeader("CF-Connecting-IP")}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		candidates = append(candidates, strings.SplitN(xff, ",", 2)[0])
	}
	candidates = append(candidates, c.GetHeader("X-Real-IP"))

	for _, h := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(h)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
