package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// Cookie names shared with the auth middleware.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// refreshCookiePath scopes the refresh token to the auth endpoints so it is
// not sent along with every API call.
const refreshCookiePath = "/api/auth"

// setAuthCookies writes both tokens as http-only cookies. Secure is enabled
// in production only, so local development over plain HTTP keeps working.
func setAuthCookies(c echo.Context, pair *ports.TokenPair, refreshTTL time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(pair.ExpiresIn),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     refreshCookiePath,
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookies expires both cookies immediately.
func clearAuthCookies(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
