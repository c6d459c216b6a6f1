package middleware

import (
	"github.com/gin-gonic/gin"
)

// Cors lets browser clients call the marketplace directly. The signature
// headers used by Auth must be allowed or preflight blocks signed writes.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*") // You can replace * with the specified domain name
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Signature, X-Sig-Time")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.Status(200)
			return
		}
		c.Next()
	}
}
