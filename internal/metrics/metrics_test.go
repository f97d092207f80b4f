package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := Middleware(mux)
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "GET /api/v1/orders/{id}"))

	// Act
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc", nil))

	// Assert
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "GET /api/v1/orders/{id}"))
	assert.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	okBefore := testutil.ToFloat64(ordersPlaced.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(cartOperations.WithLabelValues("add", "error"))

	RecordCheckout(decimal.NewFromInt(34), nil)
	RecordCartOperation("add", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ordersPlaced.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(cartOperations.WithLabelValues("add", "error")))
}
