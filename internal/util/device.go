package util

import (
	"lms_backend/internal/model"
	"net/url"
	"strings"

	"github.com/mssola/useragent"
)

// ClassifyDevice buckets a User-Agent string into mobile, tablet, desktop or unknown.
// Crawlers are unknown.
func ClassifyDevice(userAgent string) string {
	if userAgent == "" {
		return model.DeviceUnknown
	}
	parsed := useragent.New(userAgent)
	if parsed.Bot() {
		return model.DeviceUnknown
	}

	ua := strings.ToLower(userAgent)
	switch {
	case parsed.Platform() == "iPad" || strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet") ||
		(strings.Contains(ua, "android") && !strings.Contains(ua, "mobile")):
		return model.DeviceTablet
	case parsed.Mobile() || strings.Contains(ua, "mobi") || strings.Contains(ua, "iphone") || strings.Contains(ua, "ipod"):
		return model.DeviceMobile
	case strings.Contains(ua, "windows") || strings.Contains(ua, "macintosh") ||
		strings.Contains(ua, "linux") || strings.Contains(ua, "x11") || strings.Contains(ua, "cros"):
		return model.DeviceDesktop
	default:
		return model.DeviceUnknown
	}
}

var referralSources = []struct {
	match  string
	source string
}{
	{"google.", "google"},
	{"bing.", "bing"},
	{"duckduckgo.", "duckduckgo"},
	{"facebook.", "facebook"},
	{"fb.", "facebook"},
	{"twitter.", "twitter"},
	{"t.co", "twitter"},
	{"x.com", "twitter"},
	{"linkedin.", "linkedin"},
	{"youtube.", "youtube"},
	{"reddit.", "reddit"},
}

// ReferralSource maps a Referer header to a named source, falling back to the referring host.
// An empty or unparsable referrer is "direct".
func ReferralSource(referrer string) string {
	if referrer == "" {
		return "direct"
	}
	u, err := url.Parse(referrer)
	if err != nil || u.Host == "" {
		return "direct"
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	for _, rs := range referralSources {
		if !strings.HasSuffix(rs.match, ".") {
			if host == rs.match {
				return rs.source
			}
			continue
		}
		if strings.HasPrefix(host, rs.match) || strings.Contains(host, "."+rs.match) {
			return rs.source
		}
	}
	return host
}
