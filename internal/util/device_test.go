package util

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"empty", "", model.DeviceUnknown},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148", model.DeviceMobile},
		{"android phone", "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36", model.DeviceMobile},
		{"android tablet", "Mozilla/5.0 (Linux; Android 13; SM-X710) Safari/537.36", model.DeviceTablet},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", model.DeviceTablet},
		{"windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", model.DeviceDesktop},
		{"mac", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) Safari/605.1.15", model.DeviceDesktop},
		{"curl", "curl/8.4.0", model.DeviceUnknown},
		{"crawler", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", model.DeviceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDevice(tt.ua))
		})
	}
}

func TestReferralSource(t *testing.T) {
	tests := []struct {
		referrer string
		want     string
	}{
		{"", "direct"},
		{"not a url", "direct"},
		{"https://www.google.com/search?q=go", "google"},
		{"https://news.google.co.uk/", "google"},
		{"https://t.co/abc", "twitter"},
		{"https://t.coursera.org/x", "t.coursera.org"},
		{"https://www.linkedin.com/feed", "linkedin"},
		{"https://blog.example.com/post", "blog.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.referrer, func(t *testing.T) {
			assert.Equal(t, tt.want, ReferralSource(tt.referrer))
		})
	}
}
