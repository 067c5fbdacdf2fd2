package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/httpx"
	"github.com/georgemunganga/intloko-backend/internal/session"
)

// RequireSession rejects requests without a valid bearer token and stores the
// session on the request context for downstream handlers.
func RequireSession(svc Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				httpx.Error(w, r, logger, domain.ErrUnauthorized)
				return
			}

			sess, err := svc.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				httpx.Error(w, r, logger, err)
				return
			}

			httpx.RecordSession(r, sess)
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}
