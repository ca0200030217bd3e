package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthtracker/services"
	"healthtracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCookie = SessionCookie{Name: "ht_session", Secret: []byte("0123456789abcdef")}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *services.MemorySessionStore) {
	t.Helper()
	store := services.NewMemorySessionStore()
	auth := services.NewAuthService(nil, store, nil, time.Hour)

	r := gin.New()
	r.Use(RequestID(), LoadSession(auth, testCookie))
	r.GET("/page", RequireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, "hello %s", c.GetString("username"))
	})
	r.GET("/api/data", RequireSessionJSON(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("userID")})
	})
	return r, store
}

func signedCookie(t *testing.T, token string, exp time.Time) *http.Cookie {
	t.Helper()
	signed, err := utils.SignSessionToken(testCookie.Secret, token, exp)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookie.Name, Value: signed}
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequireSessionJSONRejectsAnonymous(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

func TestLoadSessionAcceptsLiveSession(t *testing.T) {
	r, store := newTestRouter(t)
	exp := time.Now().Add(time.Hour)
	require.NoError(t, store.Set(context.Background(), &services.Session{Token: "tok", UserID: 5, Username: "alice", ExpiresAt: exp}))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(signedCookie(t, "tok", exp))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello alice", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/data", nil)
	req.AddCookie(signedCookie(t, "tok", exp))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":5}`, w.Body.String())
}

func TestLoadSessionRejectsForgedAndCleared(t *testing.T) {
	r, store := newTestRouter(t)
	exp := time.Now().Add(time.Hour)
	require.NoError(t, store.Set(context.Background(), &services.Session{Token: "tok", UserID: 5, ExpiresAt: exp}))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code, "unsigned token is ignored")

	require.NoError(t, store.Clear(context.Background(), "tok"))
	req = httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(signedCookie(t, "tok", exp))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code, "cleared session is gone")
}

func TestRequestIDIsEchoed(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestSessionCookieSetAndClear(t *testing.T) {
	r := gin.New()
	sess := &services.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	r.GET("/set", func(c *gin.Context) {
		require.NoError(t, testCookie.Set(c, sess))
		c.Status(http.StatusNoContent)
	})
	r.GET("/clear", func(c *gin.Context) {
		testCookie.Clear(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	token, err := utils.ParseSessionToken(testCookie.Secret, cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clear", nil))
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

// brokenStore fails every lookup the way an unreachable redis does.
type brokenStore struct{ services.SessionStore }

func (brokenStore) Get(context.Context, string) (*services.Session, error) {
	return nil, errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
}

func TestLoadSessionStoreFailureIsServerError(t *testing.T) {
	auth := services.NewAuthService(nil, brokenStore{}, nil, time.Hour)
	r := gin.New()
	r.Use(LoadSession(auth, testCookie))
	r.GET("/page", RequireSession(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(signedCookie(t, "tok", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	// Without a cookie the store is never asked.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
