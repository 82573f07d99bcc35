package controllers

import (
	"net/http/httptest"
	"testing"

	"backend/models"

	"github.com/gin-gonic/gin"
)

func TestNewEventFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		headers  map[string]string
		expected models.AnalyticsEvent
	}{
		{
			name: "fully populated",
			headers: map[string]string{
				"User-Agent":          "Mozilla/5.0 (Linux; Android 13) Chrome/114.0 Mobile Safari/537.36",
				"X-Vercel-IP-Country": "SA",
				"X-Vercel-IP-City":    "Riyadh",
				"X-Forwarded-For":     "85.112.33.7",
			},
			expected: models.AnalyticsEvent{
				Country: "SA",
				City:    "Riyadh",
				Device:  "Mobile",
				Browser: "Chrome",
				IP:      "85.112.xxx.xxx",
			},
		},
		{
			name:    "no headers at all",
			headers: map[string]string{},
			expected: models.AnalyticsEvent{
				Country: "Unknown",
				City:    "Unknown",
				Device:  "Desktop",
				Browser: "Other",
				IP:      "Unknown",
			},
		},
		{
			name: "real-ip fallback and ipv6 passthrough",
			headers: map[string]string{
				"User-Agent": "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/114.0",
				"X-Real-IP":  "2001:db8::1",
			},
			expected: models.AnalyticsEvent{
				Country: "Unknown",
				City:    "Unknown",
				Device:  "Desktop",
				Browser: "Firefox",
				IP:      "2001:db8::1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("POST", "/api/track-visit", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			event := newEventFromRequest(c)

			if event.Country != tt.expected.Country {
				t.Errorf("Country = %q, want %q", event.Country, tt.expected.Country)
			}
			if event.City != tt.expected.City {
				t.Errorf("City = %q, want %q", event.City, tt.expected.City)
			}
			if event.Device != tt.expected.Device {
				t.Errorf("Device = %q, want %q", event.Device, tt.expected.Device)
			}
			if event.Browser != tt.expected.Browser {
				t.Errorf("Browser = %q, want %q", event.Browser, tt.expected.Browser)
			}
			if event.IP != tt.expected.IP {
				t.Errorf("IP = %q, want %q", event.IP, tt.expected.IP)
			}
			if event.Timestamp.IsZero() {
				t.Error("Timestamp not stamped")
			}
		})
	}
}
