package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORSMiddleware(origins ...string) gin.HandlerFunc {
	allowedOrigins := []string{
		"http://localhost:3000",
	}
	for _, o := range origins {
		if o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-Cart-ID", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "X-Cart-ID", "X-Request-ID"},
		AllowCredentials: true,
	})
}
