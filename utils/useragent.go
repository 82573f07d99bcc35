package utils

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	mobileRegex  = regexp.MustCompile(`(?i)Mobile|Android|iPhone|iPad|iPod`)
	tabletRegex  = regexp.MustCompile(`(?i)Tablet|iPad`)
	chromeRegex  = regexp.MustCompile(`(?i)Chrome`)
	firefoxRegex = regexp.MustCompile(`(?i)Firefox`)
	safariRegex  = regexp.MustCompile(`(?i)Safari`)
	edgeRegex    = regexp.MustCompile(`(?i)Edge`)
)

// GetDeviceType classifies a User-Agent string as Mobile, Tablet or Desktop.
// The mobile pattern is checked first, so an agent matching both (iPad)
// resolves to Mobile. The check order is load-bearing for the dashboard
// charts and must not change.
func GetDeviceType(userAgent string) string {
	if mobileRegex.MatchString(userAgent) {
		return "Mobile"
	}
	if tabletRegex.MatchString(userAgent) {
		return "Tablet"
	}
	return "Desktop"
}

// GetBrowser returns the browser family, first match wins. Chrome is checked
// before Safari because real Chrome agents also contain "Safari".
func GetBrowser(userAgent string) string {
	switch {
	case chromeRegex.MatchString(userAgent):
		return "Chrome"
	case firefoxRegex.MatchString(userAgent):
		return "Firefox"
	case safariRegex.MatchString(userAgent):
		return "Safari"
	case edgeRegex.MatchString(userAgent):
		return "Edge"
	default:
		return "Other"
	}
}

// MaskIP keeps the first two octets of an IPv4 address and masks the rest.
// Non-IPv4 input (IPv6, "Unknown") is returned unchanged.
func MaskIP(ip string) string {
	if ip == "" {
		return "Unknown"
	}
	parts := strings.Split(ip, ".")
	if len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".xxx.xxx"
	}
	return ip
}

// ClientIP reads the caller address from the proxy headers the edge sets.
func ClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	return "Unknown"
}
