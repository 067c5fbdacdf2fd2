package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/intloko-backend/internal/session"
)

// AccessLog returns middleware that logs each HTTP request with method, path,
// status code, duration and the request and user identifiers.
func AccessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// The session is attached further down the chain, so it is read
			// from a holder the auth middleware fills in.
			holder := &sessionHolder{}
			next.ServeHTTP(ww, r.WithContext(withHolder(r.Context(), holder)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			}
			if holder.session.Valid() {
				attrs = append(attrs, slog.String("user_id", holder.session.UserID.String()))
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// RecordSession lets the access log see the session established by an inner
// middleware. Calling it outside AccessLog is a no-op.
func RecordSession(r *http.Request, s session.Session) {
	if h, ok := r.Context().Value(holderKey{}).(*sessionHolder); ok {
		h.session = s
	}
}

type holderKey struct{}

type sessionHolder struct {
	session session.Session
}

func withHolder(ctx context.Context, h *sessionHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}
