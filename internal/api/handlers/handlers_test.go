package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testIdentity = "0b7c4f7e-1d1e-4a55-9d3b-2a4f8d1c9e01"

type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

// decodeData unwraps a success envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success, "expected a success envelope, got %s", rr.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
