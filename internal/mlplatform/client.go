package mlplatform

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rulprep/rulprep/internal/config"
)

const defaultRequestTimeout = 30 * time.Second

// Client talks to the managed ML platform API.
type Client struct {
	endpoint string
	http     *http.Client
}

// New builds a Client for the platform config, including its auth and TLS
// settings. The HTTP client is built once and reused across calls.
func New(cfg config.PlatformConfig) (*Client, error) {
	httpClient, err := buildHTTPClient(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("mlplatform: build http client: %w", err)
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		http:     httpClient,
	}, nil
}

// authRoundTripper injects authentication headers into every outgoing request.
type authRoundTripper struct {
	base http.RoundTripper
	auth config.AuthConfig
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	switch t.auth.Mode {
	case "apikey":
		req = req.Clone(req.Context())
		req.Header.Set(t.auth.Header, t.auth.Key())
	case "bearer":
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.auth.Token())
	case "basic":
		req = req.Clone(req.Context())
		req.SetBasicAuth(t.auth.Username, t.auth.Password())
	}
	return t.base.RoundTrip(req)
}

// buildHTTPClient constructs an http.Client for the platform's auth and TLS
// settings.
func buildHTTPClient(auth config.AuthConfig) (*http.Client, error) {
	tlsCfg := &tls.Config{}

	if auth.Mode == "mtls" {
		cert, err := tls.LoadX509KeyPair(auth.CertFile, auth.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}

		if auth.CAFile != "" {
			caPEM, err := os.ReadFile(auth.CAFile)
			if err != nil {
				return nil, fmt.Errorf("read ca file: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(caPEM) {
				return nil, fmt.Errorf("no valid certs found in ca file %q", auth.CAFile)
			}
			tlsCfg.RootCAs = pool
		}
	}

	transport := &authRoundTripper{
		base: &http.Transport{TLSClientConfig: tlsCfg},
		auth: auth,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   defaultRequestTimeout,
	}, nil
}

// doJSON performs one JSON request against the platform API. in may be nil
// for bodyless requests; out may be nil when the response body is discarded.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("mlplatform: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("mlplatform: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mlplatform: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mlplatform: %s %s: status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mlplatform: decode response: %w", err)
	}
	return nil
}
