package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultSignupPath = "/auth/v1/signup"
	defaultTimeout    = 15 * time.Second
	maxResponseBytes  = 1 << 20
)

// messageKeys lists the fields hosted auth services use for a human readable
// rejection, in order of preference.
var messageKeys = []string{"msg", "message", "error_description", "error"}

// HostedOption configures a HostedClient.
type HostedOption func(*HostedClient)

// WithHTTPClient injects the HTTP client used for outbound calls.
func WithHTTPClient(client *http.Client) HostedOption {
	return func(c *HostedClient) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout caps each registration request. Zero keeps the default.
func WithTimeout(timeout time.Duration) HostedOption {
	return func(c *HostedClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithSignupPath overrides the signup endpoint path.
func WithSignupPath(path string) HostedOption {
	return func(c *HostedClient) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.signupPath = path
	}
}

// HostedClient registers accounts against a hosted auth REST API
// (GoTrue-compatible signup endpoint).
type HostedClient struct {
	baseURL    *url.URL
	anonKey    string
	signupPath string
	timeout    time.Duration
	http       *http.Client
}

var _ Registrar = (*HostedClient)(nil)

// NewHostedClient validates the base URL and key and returns a client.
func NewHostedClient(baseURL, anonKey string, options ...HostedOption) (*HostedClient, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, errors.New("identity: base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("identity: parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("identity: unsupported base url scheme %q", parsed.Scheme)
	}
	if strings.TrimSpace(anonKey) == "" {
		return nil, errors.New("identity: anon key is required")
	}

	client := &HostedClient{
		baseURL:    parsed,
		anonKey:    strings.TrimSpace(anonKey),
		signupPath: defaultSignupPath,
		timeout:    defaultTimeout,
	}
	for _, opt := range options {
		if opt != nil {
			opt(client)
		}
	}
	if client.http == nil {
		client.http = &http.Client{}
	}
	return client, nil
}

type signupBody struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Data     Profile `json:"data"`
}

// Register posts the registration and classifies the response.
func (c *HostedClient) Register(ctx context.Context, reg Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(signupBody{
		Email:    reg.Email,
		Password: reg.Password,
		Data:     normalizeProfile(reg.Profile),
	})
	if err != nil {
		return fmt.Errorf("identity: encode signup body: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(reg.RedirectTo), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("identity: build signup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	if reg.RequestID != "" {
		req.Header.Set("X-Request-Id", reg.RequestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity: signup request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("identity: read signup response: %w", err)
	}

	return classifyResponse(resp.StatusCode, body)
}

func (c *HostedClient) endpoint(redirectTo string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + c.signupPath
	if target := strings.TrimSpace(redirectTo); target != "" {
		q := u.Query()
		q.Set("redirect_to", target)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func classifyResponse(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if status >= 400 && status < 500 && gjson.ValidBytes(body) {
		if message := firstMessage(body); message != "" {
			return &DomainError{
				Message: message,
				Code:    gjson.GetBytes(body, "error_code").String(),
				Status:  status,
			}
		}
	}
	return fmt.Errorf("identity: unexpected signup status %d", status)
}

func firstMessage(body []byte) string {
	for _, key := range messageKeys {
		result := gjson.GetBytes(body, key)
		if result.Type != gjson.String {
			continue
		}
		if msg := result.String(); strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return ""
}

func normalizeProfile(p Profile) Profile {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p
}
