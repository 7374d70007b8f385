package util

import (
	"net/url"
	"strings"
)

// MaskDSN oculta la contraseña de un DSN URL para poder loguearlo.
// Lo que no parsea como URL se reduce a su esquema (o "***").
func MaskDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if i := strings.Index(dsn, "://"); i > 0 {
			return dsn[:i] + "://***"
		}
		return "***"
	}
	return u.Redacted()
}

// MaskSecret deja ver solo el primer y último carácter.
func MaskSecret(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ""
	case len(s) <= 4:
		return "***"
	default:
		return s[:1] + "…" + s[len(s)-1:]
	}
}
