package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FRANCIGENA_BACK-END/internal/config"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/utils"
)

var testJWT = &config.JWTConfig{
	Secret:         "0123456789abcdef0123456789abcdef",
	Issuer:         "francigena-test",
	AccessTokenTTL: time.Hour,
}

func whoami(w http.ResponseWriter, r *http.Request) {
	u, _ := utils.GetUsernameFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	w.Write([]byte(u + "/" + role))
}

func TestAuthMiddleware(t *testing.T) {
	token, err := GenerateToken("anna", models.RolePilgrim, testJWT)
	require.NoError(t, err)

	otherIssuer := *testJWT
	otherIssuer.Issuer = "someone-else"
	foreign, err := GenerateToken("anna", models.RolePilgrim, &otherIssuer)
	require.NoError(t, err)

	badRole, err := GenerateToken("anna", "admin", testJWT)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + token, http.StatusOK, "anna/pilgrim"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
		{"other issuer", "Bearer " + foreign, http.StatusUnauthorized, ""},
		{"unknown role", "Bearer " + badRole, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			AuthMiddleware(whoami, testJWT)(w, r)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	token, err := GenerateToken("gianni", models.RoleOwner, testJWT)
	require.NoError(t, err)
	h := AuthMiddleware(RequireRole(models.RolePilgrim, whoami), testJWT)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := AccessLog(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, utils.GetRequestID(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/segments", nil))

	id := w.Header().Get(requestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), id)

	// a valid incoming id is kept
	incoming := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(requestIDHeader, incoming)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, incoming, w.Header().Get(requestIDHeader))
}
