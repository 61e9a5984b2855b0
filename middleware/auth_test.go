package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shakil880/B11-Assignment-12-category-008-server/utils"
)

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, c, called
}

func TestAuthMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec, _, called := runAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec, _, called := runAuth(t, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec, _, called := runAuth(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthAttachesIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := primitive.NewObjectID()
	token, err := utils.GenerateToken(userID, "agent@example.com", "agent")
	require.NoError(t, err)

	rec, c, called := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, userID, c.Get("user_id"))
	assert.Equal(t, "agent@example.com", c.Get("user_email"))
	assert.Equal(t, "agent", c.Get("user_role"))
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
		wantCalled bool
	}{
		{"agent allowed", "agent", []string{"agent", "admin"}, http.StatusOK, true},
		{"admin allowed", "admin", []string{"admin"}, http.StatusOK, true},
		{"user forbidden", "user", []string{"agent", "admin"}, http.StatusForbidden, false},
		{"fraud forbidden", "fraud", []string{"agent", "admin"}, http.StatusForbidden, false},
		{"no role forbidden", "", []string{"admin"}, http.StatusForbidden, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != "" {
				c.Set("user_role", tc.role)
			}

			called := false
			handler := RequireRoles(tc.allowed...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})
			require.NoError(t, handler(c))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCalled, called)
		})
	}
}
