package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/longwave/internal/auth"
	"example.com/longwave/internal/state"
)

func TestGuestHandler_Create(t *testing.T) {
	authSvc := auth.NewService([]byte("test-secret"), time.Hour)
	h := &GuestHandler{Auth: authSvc}

	req := httptest.NewRequest(http.MethodPost, "/api/guest", strings.NewReader(`{"name":"Alice"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GuestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, state.ValidID(resp.PlayerID))

	claims, err := authSvc.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.PlayerID, claims.PlayerID)
	assert.Equal(t, "Alice", claims.Name)
}

func TestGuestHandler_Rejections(t *testing.T) {
	h := &GuestHandler{Auth: auth.NewService([]byte("test-secret"), time.Hour)}

	cases := []struct {
		name     string
		method   string
		body     string
		wantCode int
	}{
		{name: "get", method: http.MethodGet, body: "", wantCode: http.StatusMethodNotAllowed},
		{name: "bad_json", method: http.MethodPost, body: `{broken`, wantCode: http.StatusBadRequest},
		{name: "blank_name", method: http.MethodPost, body: `{"name":"   "}`, wantCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/guest", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			assert.Equal(t, tc.wantCode, rec.Code)

			var er ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&er))
			assert.NotEmpty(t, er.Code)
		})
	}
}
