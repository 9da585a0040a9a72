package shopserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-shop-api/internal/clients/http/kameleoon"
)

const (
	DefaultVisitorCookieName = "kameleoonVisitorCode"
	DefaultVisitorCookieTTL  = 365 * 24 * time.Hour

	visitorCodeKey      = "shopserver.visitorCode"
	visitorIssuedKey    = "shopserver.visitorIssued"
	maxVisitorCodeBytes = 255
)

// VisitorConfig controls the visitor identification cookie.
type VisitorConfig struct {
	CookieName string
	Domain     string
	TTL        time.Duration
	Secure     bool
	// NewCode issues codes for first-time visitors.
	NewCode func() string
}

func (cfg VisitorConfig) withDefaults() VisitorConfig {
	if strings.TrimSpace(cfg.CookieName) == "" {
		cfg.CookieName = DefaultVisitorCookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultVisitorCookieTTL
	}
	if cfg.NewCode == nil {
		cfg.NewCode = kameleoon.NewVisitorCode
	}
	return cfg
}

// VisitorMiddleware reads the visitor code cookie, issuing a new code and
// cookie when it is missing or malformed. The code is available to handlers
// through VisitorCode.
func VisitorMiddleware(cfg VisitorConfig) gin.HandlerFunc {
	cfg = cfg.withDefaults()
	return func(c *gin.Context) {
		code, err := c.Cookie(cfg.CookieName)
		code = strings.TrimSpace(code)
		issued := err != nil || code == "" || len(code) > maxVisitorCodeBytes
		if issued {
			code = cfg.NewCode()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    code,
				Path:     "/",
				Domain:   cfg.Domain,
				MaxAge:   int(cfg.TTL / time.Second),
				Expires:  time.Now().Add(cfg.TTL),
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(visitorCodeKey, code)
		c.Set(visitorIssuedKey, issued)
		c.Next()
	}
}

// VisitorCode returns the code stored by VisitorMiddleware, or "".
func VisitorCode(c *gin.Context) string {
	return c.GetString(visitorCodeKey)
}

// ReturningVisitorCode returns the code only when the request carried it.
// A code issued on this request has not been seen by the experimentation
// platform yet, so it yields "".
func ReturningVisitorCode(c *gin.Context) string {
	if _, ok := c.Get(visitorCodeKey); !ok || c.GetBool(visitorIssuedKey) {
		return ""
	}
	return VisitorCode(c)
}
