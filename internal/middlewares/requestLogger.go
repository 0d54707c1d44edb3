package middlewares

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tubeideas/internal/utils"
)

// RequestLogger tags each request with an id, stores a request-scoped logger in the
// context and logs the finished request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(utils.RequestIDHeader)
		if requestID == "" {
			requestID = utils.NewRequestID()
		}
		w.Header().Set(utils.RequestIDHeader, requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		lrw := newLoggingResponseWriter(w)
		next.ServeHTTP(lrw, r)

		var event *zerolog.Event
		switch {
		case lrw.statusCode >= http.StatusInternalServerError:
			event = logger.Error()
		case lrw.statusCode >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", lrw.statusCode).
			Int("size", lrw.responseSize).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}
