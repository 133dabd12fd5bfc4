// File: internal/session/cookie.go
package session

import (
	"net/http"
	"time"

	"customer_support_backend/internal/config"

	"github.com/gin-gonic/gin"
)

// SetCookie issues the session cookie to the client.
func SetCookie(c *gin.Context, cfg *config.Config, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.SessionTTL),
		Secure:   cfg.SessionCookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(c *gin.Context, cfg *config.Config) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   cfg.SessionCookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest reads the session token from the request cookie.
// Returns an empty string when the cookie is absent.
func TokenFromRequest(c *gin.Context, cfg *config.Config) string {
	cookie, err := c.Request.Cookie(cfg.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
