package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/notes_app/internal/core/domain"
	"github.com/SscSPs/notes_app/internal/middleware"
	"github.com/SscSPs/notes_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauthState"

// cookieJar writes the session cookies. Setting and clearing share one attribute set so that
// browsers treat them as the same cookie.
type cookieJar struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func newCookieJar(cfg *config.Config) cookieJar {
	return cookieJar{
		secure:     cfg.IsProduction,
		accessTTL:  cfg.AccessTokenExpiryDuration,
		refreshTTL: cfg.RefreshTokenExpiryDuration,
	}
}

func (j cookieJar) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j cookieJar) setSession(c *gin.Context, pair domain.TokenPair) {
	http.SetCookie(c.Writer, j.cookie(middleware.AccessTokenCookie, pair.AccessToken, int(j.accessTTL.Seconds())))
	http.SetCookie(c.Writer, j.cookie(middleware.RefreshTokenCookie, pair.RefreshToken, int(j.refreshTTL.Seconds())))
}

func (j cookieJar) clearSession(c *gin.Context) {
	http.SetCookie(c.Writer, j.cookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(c.Writer, j.cookie(middleware.RefreshTokenCookie, "", -1))
}

func (j cookieJar) setState(c *gin.Context, state string) {
	http.SetCookie(c.Writer, j.cookie(oauthStateCookie, state, int((10 * time.Minute).Seconds())))
}

func (j cookieJar) clearState(c *gin.Context) {
	http.SetCookie(c.Writer, j.cookie(oauthStateCookie, "", -1))
}
