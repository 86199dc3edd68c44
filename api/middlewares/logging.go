package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLogger writes one access log entry per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
			ww := middleware.NewWrapResponseWriter(responseWriter, request.ProtoMajor)
			start := time.Now()

			defer func() {
				fields := []zap.Field{
					zap.String("method", request.Method),
					zap.String("path", request.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(request.Context())),
				}
				switch {
				case ww.Status() >= http.StatusInternalServerError:
					logger.Error("request", fields...)
				case ww.Status() >= http.StatusBadRequest:
					logger.Warn("request", fields...)
				default:
					logger.Info("request", fields...)
				}
			}()

			next.ServeHTTP(ww, request)
		})
	}
}
