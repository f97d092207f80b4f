package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils/response"
)

// requireIdentity reads the identity token the Identity middleware put in
// the context. Without one it writes a 401 and returns false.
func requireIdentity(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		logger.Warn("Request without identity token")
		response.Error(w, errors.UnauthorizedError("Identity token is required"))
		return "", false
	}
	return identity, true
}
