package middleware

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs one line per handled request.
func RequestLogger() drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()

		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("remote", c.Request.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
