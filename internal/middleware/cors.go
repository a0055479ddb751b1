package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"planet-randomizer/internal/shared/config"
)

var corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

// CORS allows the configured frontend origins to call the API with credentials.
// Retry-After is exposed so browsers can back off when rate limited.
func CORS(cfg config.FrontendConfig) func(http.Handler) http.Handler {
	origins := cfg.Origins()

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   corsMethods,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		Debug:            cfg.CORSDebug,
	})

	slog.Info("CORS middleware configured",
		"component", "cors",
		"allowed_origins", origins,
		"allowed_methods", corsMethods,
		"debug_mode", cfg.CORSDebug,
	)

	return c.Handler
}
