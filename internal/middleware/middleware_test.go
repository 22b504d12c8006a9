package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ameen01/Bad-Trade/internal/repository"
	"github.com/ameen01/Bad-Trade/internal/session"
	"github.com/ameen01/Bad-Trade/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*gin.Engine, *session.Manager, *utils.JWTUtil) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	manager := session.NewManager(
		repository.NewUserRepository(repository.NewFileDocument(filepath.Join(dir, "users.json"))),
		repository.NewRecordRepository(repository.NewFileDocument(filepath.Join(dir, "data.csv"))),
	)
	jwtUtil := utils.NewJWTUtil("test-secret")

	r := gin.New()
	r.Use(SessionMiddleware(manager, jwtUtil))
	r.GET("/whoami", func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, sess.ID)
	})
	r.GET("/login-as/:user", func(c *gin.Context) {
		sess, _ := CurrentSession(c)
		sess.LoggedIn = true
		sess.Username = c.Param("user")
		c.Status(http.StatusNoContent)
	})
	r.GET("/private", LoginMiddleware(), func(c *gin.Context) { c.String(http.StatusOK, "private") })
	r.GET("/admin", AdminMiddleware(), func(c *gin.Context) { c.String(http.StatusOK, "admin") })
	return r, manager, jwtUtil
}

func do(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", SessionCookieName)
	return nil
}

func TestSessionMiddleware_IssuesAndReusesCookie(t *testing.T) {
	r, manager, jwtUtil := newTestEngine(t)

	first := do(r, "/whoami")
	require.Equal(t, http.StatusOK, first.Code)
	cookie := sessionCookie(t, first)
	assert.True(t, cookie.HttpOnly)

	sid, err := jwtUtil.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, sid, first.Body.String())

	second := do(r, "/whoami", cookie)
	assert.Equal(t, sid, second.Body.String())
	assert.Empty(t, second.Result().Cookies(), "known session gets no new cookie")
	assert.Equal(t, 1, manager.Len())
}

func TestSessionMiddleware_InvalidCookieStartsFreshSession(t *testing.T) {
	r, manager, _ := newTestEngine(t)

	forged, err := utils.NewJWTUtil("other-secret").GenerateToken("forged-id")
	require.NoError(t, err)

	w := do(r, "/whoami", &http.Cookie{Name: SessionCookieName, Value: forged})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "forged-id", w.Body.String())
	sessionCookie(t, w)
	assert.Equal(t, 1, manager.Len())
}

func TestLoginMiddleware(t *testing.T) {
	r, _, _ := newTestEngine(t)

	w := do(r, "/private")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	do(r, "/login-as/jane", cookie)

	w = do(r, "/private", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "private", w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	r, _, _ := newTestEngine(t)

	w := do(r, "/admin")
	assert.Equal(t, http.StatusForbidden, w.Code)
	cookie := sessionCookie(t, w)

	do(r, "/login-as/jane", cookie)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", cookie).Code)

	do(r, "/login-as/admin", cookie)
	w = do(r, "/admin", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}
