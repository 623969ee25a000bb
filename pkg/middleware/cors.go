package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Cors libera as origens configuradas. Lista vazia usa as origens de desenvolvimento.
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultAllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", ClientIDHeader},
		ExposedHeaders:   []string{CorrelationIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 horas
	})

	return c.Handler
}
