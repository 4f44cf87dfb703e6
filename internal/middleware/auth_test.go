package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/whoami", SessionAuth(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return r
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionAuth_ValidToken(t *testing.T) {
	token, err := IssueSessionToken(testSecret, "session-42", time.Hour, time.Now())
	require.NoError(t, err)

	w := get(newAuthRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-42", w.Body.String())
}

func TestSessionAuth_Rejects(t *testing.T) {
	expired, err := IssueSessionToken(testSecret, "session-42", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	foreign, err := IssueSessionToken("other-secret", "session-42", time.Hour, time.Now())
	require.NoError(t, err)
	noSubject, err := IssueSessionToken(testSecret, "", time.Hour, time.Now())
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		code   string
	}{
		"missing":    {"", "missing_authorization_header"},
		"not bearer": {"Basic abc", "invalid_authorization_header"},
		"garbage":    {"Bearer abc", "invalid_token"},
		"expired":    {"Bearer " + expired, "invalid_token"},
		"foreign":    {"Bearer " + foreign, "invalid_token"},
		"no subject": {"Bearer " + noSubject, "invalid_token_payload"},
	}

	r := newAuthRouter()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := get(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := newAuthRouter()
	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}
