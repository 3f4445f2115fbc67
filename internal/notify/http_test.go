package notify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    target
		wantErr bool
	}{
		{"https://relay.example.com", target{secure: true, host: "relay.example.com", port: "443", path: "/"}, false},
		{"http://relay.example.com", target{secure: false, host: "relay.example.com", port: "80", path: "/"}, false},
		{"https://relay.example.com:8443", target{secure: true, host: "relay.example.com", port: "8443", path: "/"}, false},
		{"http://10.0.0.5:8000/api", target{secure: false, host: "10.0.0.5", port: "8000", path: "/api"}, false},
		{"ftp://relay.example.com", target{}, true},
		{"relay.example.com", target{}, true},
		{"https://", target{}, true},
	}

	for _, tt := range tests {
		got, err := splitURL(tt.raw)
		if tt.wantErr {
			assert.Errorf(t, err, "url=%q", tt.raw)
			continue
		}
		require.NoErrorf(t, err, "url=%q", tt.raw)
		assert.Equalf(t, tt.want, got, "url=%q", tt.raw)
		assert.Equal(t, tt.want.host+":"+tt.want.port, got.addr())
	}
}

func TestBuildRequest(t *testing.T) {
	body := []byte(`{"message":"hi"}`)
	req := string(buildRequest("relay.example.com", "/send", body))

	want := "POST /send HTTP/1.1\r\n" +
		"Host: relay.example.com\r\n" +
		"Content-Type: application/json\r\n" +
		"Content-Length: 16\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		`{"message":"hi"}`
	assert.Equal(t, want, req)
}

func TestBuildRequestContentLengthIsBytes(t *testing.T) {
	// Multi-byte payload: byte length, not rune count.
	body := []byte(`{"message":"概念"}`)
	require.NotEqual(t, len([]rune(string(body))), len(body))

	req := string(buildRequest("h", "/", body))
	assert.Contains(t, req, fmt.Sprintf("Content-Length: %d\r\n", len(body)))
}

func TestParseResponse(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"status\":\"ok\"}")

	status, body, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, `{"status":"ok"}`, string(body))
}

func TestParseResponseVariants(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{"no body", "HTTP/1.1 204 No Content\r\nConnection: close\r\n\r\n", 204, "", false},
		{"no header terminator", "HTTP/1.1 200 OK\r\nContent-Type: text/plain", 200, "", false},
		{"error status", "HTTP/1.1 502 Bad Gateway\r\n\r\nupstream died", 502, "upstream died", false},
		{"status line only", "HTTP/1.0 404 Not Found", 404, "", false},
		{"empty", "", 0, "", true},
		{"garbage", "hello world", 0, "", true},
		{"non-numeric status", "HTTP/1.1 abc OK\r\n\r\n", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, err := parseResponse([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestMessages(t *testing.T) {
	msg := GasAlertMessage(1600, 1500, 24.5, 60)
	assert.Contains(t, msg, "GAS ALERT")
	assert.Contains(t, msg, "Current: 1600")
	assert.Contains(t, msg, "Threshold: 1500")
	assert.Contains(t, msg, "24.5C")

	assert.Contains(t, GasClearMessage(1200, 1500), "CLEARED")
	assert.Contains(t, TempAlertMessage(36.2, 35, 58), "36.2C")
	assert.Contains(t, TempClearMessage(33.0, 35), "33.0C")

	start := StartupMessage(1500, 35)
	assert.True(t, strings.Contains(start, "1500") && strings.Contains(start, "35.0C"))
}
