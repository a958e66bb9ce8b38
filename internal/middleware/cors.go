package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/Simplici0/walletcalc/internal/config"
)

// CORS applies the configured cross-origin policy to the JSON API. With no
// allowed origins the API stays same-origin and requests pass through untouched.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil || len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	policy := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return policy.Handler
}
