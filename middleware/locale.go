package middleware

import (
	"net/http"
	"path"
	"strings"

	"fashion-store/utils"

	"github.com/gin-gonic/gin"
)

const (
	LocaleKey       = "locale"
	localeCookie    = "locale"
	localeCookieAge = 365 * 24 * 60 * 60
)

var localeBypassPrefixes = []string{"/api", "/swagger", "/metrics", "/health", "/_next"}

// LocaleRouter makes every page URL start with a supported locale. Requests
// without one are redirected to /{locale}{path}, the locale being taken from
// the cookie, then Accept-Language, then defaultLocale.
func LocaleRouter(defaultLocale string) gin.HandlerFunc {
	if !utils.IsSupportedLocale(defaultLocale) {
		defaultLocale = utils.LocaleArabic
	}

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if bypassLocale(p) {
			c.Next()
			return
		}

		if locale, ok := PathLocale(p); ok {
			c.Set(LocaleKey, locale)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(localeCookie, locale, localeCookieAge, "/", "", false, false)
			c.Next()
			return
		}

		locale := defaultLocale
		if cookie, err := c.Cookie(localeCookie); err == nil && utils.IsSupportedLocale(cookie) {
			locale = cookie
		} else if accept := c.GetHeader("Accept-Language"); accept != "" {
			locale = utils.NegotiateLocale(accept, defaultLocale)
		}

		target := "/" + locale
		if p != "/" {
			target += p
		}
		if q := c.Request.URL.RawQuery; q != "" {
			target += "?" + q
		}
		c.Redirect(http.StatusTemporaryRedirect, target)
		c.Abort()
	}
}

// PathLocale reports the locale carried by the first path segment.
func PathLocale(p string) (string, bool) {
	seg := strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if utils.IsSupportedLocale(seg) {
		return seg, true
	}
	return "", false
}

func bypassLocale(p string) bool {
	for _, prefix := range localeBypassPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return path.Ext(p) != ""
}

// RequestLocale resolves the locale for an API request from ?locale=, the
// router-set context value, then Accept-Language.
func RequestLocale(c *gin.Context, fallback string) string {
	if q := c.Query("locale"); utils.IsSupportedLocale(q) {
		return q
	}
	if v, ok := c.Get(LocaleKey); ok {
		if s, ok := v.(string); ok && utils.IsSupportedLocale(s) {
			return s
		}
	}
	return utils.NegotiateLocale(c.GetHeader("Accept-Language"), fallback)
}
