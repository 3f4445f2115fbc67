package notify

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// target is a parsed notification endpoint.
type target struct {
	secure bool
	host   string
	port   string
	path   string
}

// addr returns the dial address.
func (t target) addr() string {
	return t.host + ":" + t.port
}

// splitURL breaks an http(s) URL into its dial and request parts. Only the
// two schemes this client speaks are accepted.
func splitURL(raw string) (target, error) {
	var t target
	switch {
	case strings.HasPrefix(raw, "https://"):
		t.secure = true
		t.port = "443"
		raw = raw[len("https://"):]
	case strings.HasPrefix(raw, "http://"):
		t.port = "80"
		raw = raw[len("http://"):]
	default:
		return t, fmt.Errorf("unsupported URL scheme in %q", raw)
	}

	t.path = "/"
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		t.path = raw[i:]
		raw = raw[:i]
	}

	t.host = raw
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		t.host = raw[:i]
		t.port = raw[i+1:]
	}

	if t.host == "" {
		return t, fmt.Errorf("empty host in URL")
	}
	return t, nil
}

// buildRequest frames a minimal HTTP/1.1 POST. Content-Length is the byte
// length of the serialized body, which differs from the rune count for
// multi-byte payloads.
func buildRequest(host, path string, body []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "POST %s HTTP/1.1\r\n", path)
	fmt.Fprintf(&b, "Host: %s\r\n", host)
	b.WriteString("Content-Type: application/json\r\n")
	fmt.Fprintf(&b, "Content-Length: %d\r\n", len(body))
	b.WriteString("Connection: close\r\n")
	b.WriteString("\r\n")
	b.Write(body)
	return b.Bytes()
}

// parseResponse extracts the status code and body from a raw HTTP response.
// It operates on the fully accumulated byte stream, so it is indifferent to
// how many reads the transport needed. The body is everything after the first
// blank line; responses without one yield an empty body.
func parseResponse(raw []byte) (status int, body []byte, err error) {
	line := raw
	if i := bytes.Index(raw, []byte("\r\n")); i >= 0 {
		line = raw[:i]
	}

	fields := strings.Fields(string(line))
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return 0, nil, fmt.Errorf("malformed status line %q", string(line))
	}

	status, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, nil, fmt.Errorf("malformed status code %q", fields[1])
	}

	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		body = raw[i+4:]
	}
	return status, body, nil
}
