// Package api implements the HTTP client for the roster backend. It owns
// the authenticated-request primitive: the bearer credential is read from
// the token store per request and attached when present, so no copy of
// the token outlives a single call.
package api

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

	"github.com/rs/zerolog"

	"github.com/mergington/roster-console/internal/core/domain"
	"github.com/mergington/roster-console/internal/core/ports"
	"github.com/mergington/roster-console/internal/metrics"
)

type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	log     zerolog.Logger
}

// NewClient builds a backend client rooted at baseURL. A timeout of zero
// leaves requests uncancelled client-side; token validity is decided only
// by server responses, never by local expiry checks.
func NewClient(baseURL string, tokens ports.TokenStore, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// do issues req with the stored bearer credential attached when one
// exists. An unreadable store is treated as an absent credential: the
// request goes out unauthenticated and the server decides.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	token, err := c.tokens.Get(req.Context())
	if err != nil {
		c.log.Warn().Err(err).Msg("token store unreadable, sending unauthenticated")
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

// Activities fetches all records unauthenticated, preserving the order of
// the response object's keys. That order drives both the rendered listing
// and the activity option set, so it must survive decoding.
func (c *Client) Activities(ctx context.Context) ([]domain.Activity, error) {
	done := track("activities")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", nil)
	if err != nil {
		return nil, done(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, done(fmt.Errorf("fetch activities: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, done(apiError(resp))
	}

	activities, err := decodeActivities(resp.Body)
	if err != nil {
		return nil, done(fmt.Errorf("decode activities: %w", err))
	}
	return activities, done(nil)
}

// decodeActivities reads the name→details object token by token so the
// server's key order is preserved; encoding/json maps would lose it.
func decodeActivities(r io.Reader) ([]domain.Activity, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var out []domain.Activity
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		var a domain.Activity
		if err := dec.Decode(&a); err != nil {
			return nil, fmt.Errorf("activity %q: %w", name, err)
		}
		a.Name = name
		out = append(out, a)
	}
	return out, nil
}

// Login posts credentials unauthenticated. Failures carry the server's
// detail when the body is well formed; the token store is never touched
// here.
func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	done := track("login")
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, done(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, done(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, done(fmt.Errorf("login request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, done(apiError(resp))
	}

	var body struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
		Role        string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, done(fmt.Errorf("decode login response: %w", err))
	}

	return &ports.LoginResult{
		Token:    body.AccessToken,
		Identity: domain.Identity{Username: body.Username, Role: body.Role},
	}, done(nil)
}

// Logout posts the logout request with the stored credential. The
// server's response status is irrelevant; only a transport failure is
// reported, and even that the caller swallows.
func (c *Client) Logout(ctx context.Context) error {
	done := track("logout")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return done(err)
	}

	resp, err := c.do(req)
	if err != nil {
		return done(fmt.Errorf("logout request: %w", err))
	}
	resp.Body.Close()
	return done(nil)
}

// Me resolves the identity behind the stored credential. Any non-success
// status means the session is no longer valid, whatever the body says.
func (c *Client) Me(ctx context.Context) (*domain.Identity, error) {
	done := track("me")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, done(err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, done(fmt.Errorf("resolve identity: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, done(domain.ErrSessionInvalid)
	}

	var identity domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, done(fmt.Errorf("decode identity: %w", err))
	}
	return &identity, done(nil)
}

// Signup registers email for the named activity.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, http.MethodPost, "signup", activity, email)
}

// Unregister removes email from the named activity.
func (c *Client) Unregister(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "unregister", activity, email)
}

func (c *Client) mutate(ctx context.Context, method, action, activity, email string) (string, error) {
	done := track(action)
	target := fmt.Sprintf("%s/activities/%s/%s?email=%s",
		c.baseURL, url.PathEscape(activity), action, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return "", done(err)
	}

	resp, err := c.do(req)
	if err != nil {
		return "", done(fmt.Errorf("%s request: %w", action, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", done(apiError(resp))
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", done(fmt.Errorf("decode %s response: %w", action, err))
	}
	return body.Message, done(nil)
}

// apiError converts a failure response into *domain.APIError, keeping the
// server's detail when the body carries one.
func apiError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return &domain.APIError{Status: resp.StatusCode, Detail: body.Detail}
}

// track starts a metrics observation for one endpoint call. The returned
// func records duration and outcome and passes err through unchanged.
func track(endpoint string) func(error) error {
	start := time.Now()
	return func(err error) error {
		metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		metrics.APIRequestsTotal.WithLabelValues(endpoint, outcome(err)).Inc()
		return err
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isAPIError(err):
		return "api_error"
	default:
		return "transport"
	}
}

func isAPIError(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) || errors.Is(err, domain.ErrSessionInvalid)
}
