package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
)

// CORSOptions returns the CORS policy for the API: origins from
// CORS_ALLOWED_ORIGINS, the four CRUD verbs, and JSON headers.
func CORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", reqid.Header},
		ExposedHeaders:   []string{reqid.Header},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

// CORS returns the go-chi/cors handler built from opts.
func CORS(opts cors.Options) func(http.Handler) http.Handler {
	return cors.Handler(opts)
}
