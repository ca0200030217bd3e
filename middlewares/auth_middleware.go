package middlewares

import (
	"errors"
	"net/http"
	"time"

	"healthtracker/logging"
	"healthtracker/services"
	"healthtracker/utils"

	"github.com/gin-gonic/gin"
)

const (
	ctxSession  = "session"
	ctxUserID   = "userID"
	ctxUsername = "username"
)

// SessionCookie describes how the session token travels to the browser.
type SessionCookie struct {
	Name   string
	Secret []byte
	Secure bool
}

// Set writes sess as a signed cookie that expires with the session.
func (sc SessionCookie) Set(c *gin.Context, sess *services.Session) error {
	signed, err := utils.SignSessionToken(sc.Secret, sess.Token, sess.ExpiresAt)
	if err != nil {
		return err
	}
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, signed, maxAge, "/", "", sc.Secure, true)
	return nil
}

// Clear expires the cookie in the browser.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// Token returns the session token carried by a valid cookie, or "".
func (sc SessionCookie) Token(c *gin.Context) string {
	raw, err := c.Cookie(sc.Name)
	if err != nil || raw == "" {
		return ""
	}
	token, err := utils.ParseSessionToken(sc.Secret, raw)
	if err != nil {
		return ""
	}
	return token
}

// LoadSession resolves the cookie against the session store and exposes the
// session, user id and username on the context. Only the session store is
// consulted. Requests without a live session pass through unauthenticated;
// a failing store aborts the request with 500.
func LoadSession(auth *services.AuthService, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.Token(c)
		if token == "" {
			c.Next()
			return
		}
		sess, err := auth.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ctxSession, sess)
			c.Set(ctxUserID, sess.UserID)
			c.Set(ctxUsername, sess.Username)
		case errors.Is(err, services.ErrUnauthenticated):
		default:
			_ = c.Error(err)
			logging.Error().Err(err).Msg("resolve session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session set by LoadSession.
func SessionFrom(c *gin.Context) (*services.Session, bool) {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*services.Session)
	return sess, ok && sess != nil
}

// RequireSession sends anonymous browsers to the login page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSessionJSON rejects anonymous API calls with 401.
func RequireSessionJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
