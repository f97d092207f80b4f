package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
)

// CreateTestRequestWithIdentity builds a request as the Identity middleware
// would hand it to a handler.
func CreateTestRequestWithIdentity(method, target string, body io.Reader, identity string, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutIdentity(method, target, body, pathParams)
	return req.WithContext(middleware.WithIdentity(req.Context(), identity))
}

func CreateTestRequestWithoutIdentity(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(req.Context(), logger)

	return req.WithContext(ctx)
}
