package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type identityContextKey struct{}

// IdentityOptions configure the anonymous identity cookie.
type IdentityOptions struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Identity makes sure every request carries a browser identity token. The
// token lives in a long-lived cookie; an absent or malformed cookie is
// replaced with a fresh UUID.
func Identity(opts IdentityOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := LoggerFromContext(r.Context())

			token := ""
			if c, err := r.Cookie(opts.CookieName); err == nil {
				if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
					token = c.Value
				} else {
					logger.Warn("Replacing malformed identity cookie")
				}
			}

			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     opts.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(opts.MaxAge.Seconds()),
					Expires:  time.Now().Add(opts.MaxAge),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, token)
			ctx = WithLogger(ctx, logger.With(slog.String("identity", token)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a copy of ctx carrying the identity token.
func WithIdentity(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, identityContextKey{}, token)
}

func IdentityFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(identityContextKey{}).(string)
	return token, ok && token != ""
}
