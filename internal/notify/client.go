// Package notify pushes alert messages to the notification relay over a
// hand-written HTTP/1.1 client. The relay forwards them to the end-user
// messaging platform; this side only needs POST, two endpoints, and a status
// code, so the request framing and response parsing are done directly on the
// socket instead of pulling in a managed HTTP stack.
package notify

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Notifier sends alert messages. Implementations must never panic across
// this boundary; every failure is an error.
type Notifier interface {
	// Send pushes a message to a single user.
	Send(userID, message string) error

	// Broadcast pushes a message to all users of the relay.
	Broadcast(message string) error
}

const (
	// DefaultTimeout bounds connect, write, and the whole read loop.
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a response is accumulated. The
	// relay answers with a short JSON object; anything bigger is truncated
	// and parsed as-is.
	maxResponseBytes = 64 * 1024
)

// DialFunc opens a TCP connection. Injectable for tests.
type DialFunc func(addr string, timeout time.Duration) (net.Conn, error)

// Client talks to the notification relay.
type Client struct {
	baseURL  string
	timeout  time.Duration
	insecure bool
	dial     DialFunc
	log      *zap.SugaredLogger
}

// NewClient creates a Client for the given base URL ("https://host[:port]").
// insecure skips TLS certificate verification for relays behind tunnels with
// self-signed certificates.
func NewClient(baseURL string, timeout time.Duration, insecure bool, log *zap.SugaredLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		timeout:  timeout,
		insecure: insecure,
		dial:     tcpDial,
		log:      log,
	}
}

// Send pushes a message to a single user via POST /send.
func (c *Client) Send(userID, message string) error {
	return c.post("/send", map[string]string{
		"user_id": userID,
		"message": message,
	})
}

// Broadcast pushes a message to all users via POST /broadcast.
func (c *Client) Broadcast(message string) error {
	return c.post("/broadcast", map[string]string{
		"message": message,
	})
}

// post performs one request/response round trip. Any transport or protocol
// failure, and any non-2xx status, is an error.
func (c *Client) post(endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	t, err := splitURL(c.baseURL)
	if err != nil {
		return fmt.Errorf("notify URL: %w", err)
	}

	conn, err := c.dial(t.addr(), c.timeout)
	if err != nil {
		return fmt.Errorf("connect %s: %w", t.addr(), err)
	}
	defer conn.Close()

	// One absolute deadline covers the write and the whole read loop.
	deadline := time.Now().Add(c.timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	if t.secure {
		tlsConn := tls.Client(conn, &tls.Config{
			ServerName:         t.host,
			InsecureSkipVerify: c.insecure,
		})
		if err := tlsConn.Handshake(); err != nil {
			return fmt.Errorf("tls handshake with %s: %w", t.host, err)
		}
		conn = tlsConn
	}

	// A bare-host base URL parses to path "/"; trim it so the request
	// line is "POST /send", not "POST //send".
	req := buildRequest(t.host, strings.TrimSuffix(t.path, "/")+endpoint, body)
	if _, err := conn.Write(req); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	raw, err := readAll(conn, maxResponseBytes)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	status, respBody, err := parseResponse(raw)
	if err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("relay returned %d: %s", status, strings.TrimSpace(string(respBody)))
	}

	c.log.Debugw("notification delivered", "endpoint", endpoint, "status", status)
	return nil
}

// readAll accumulates the response until the peer closes the connection or
// the byte budget is exhausted. A single read never returns the whole
// response on slow links, so this loops.
func readAll(conn net.Conn, budget int) ([]byte, error) {
	var raw []byte
	buf := make([]byte, 1024)
	for len(raw) < budget {
		n, err := conn.Read(buf)
		raw = append(raw, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// A timeout after we already have a response is normal
			// with keep-alive-ish peers that ignore Connection:
			// close; parse whatever arrived.
			if len(raw) > 0 && isTimeout(err) {
				break
			}
			return nil, err
		}
	}
	return raw, nil
}

func tcpDial(addr string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("tcp", addr, timeout)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
