// Package identity talks to the internal identity provider (a
// GoTrue-compatible HTTP API). Only shadow accounts of the form
// {employeeId}@internal.local ever exist there; no real end-user email
// login is issued by this service.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/apperr"
)

type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewClient(cfg config.Identity) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		// No client timeout here; cancellation is the caller's business.
		http: &http.Client{},
	}
}

// Session is the bearer-token pair returned by the provider's token
// endpoint. Not persisted anywhere beyond the current request.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	RefreshToken string `json:"refresh_token"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (c *Client) configured() error {
	if c.baseURL == "" || c.serviceKey == "" {
		return apperr.Configf("identity", "IDENTITY_URL and IDENTITY_SERVICE_KEY must be configured")
	}
	return nil
}

// AdminUpsertUser creates the shadow account or, when it already exists,
// overwrites its password. Always converging on the freshly derived
// password keeps concurrent logins consistent; the shadow account is
// never used interactively, so the constant mutation is harmless.
func (c *Client) AdminUpsertUser(ctx context.Context, email, password string) error {
	if err := c.configured(); err != nil {
		return err
	}

	payload := map[string]any{"email": email, "password": password, "email_confirm": true}
	status, body, err := c.do(ctx, http.MethodPost, "/admin/users", payload, c.serviceKey)
	if err != nil {
		return err
	}
	if status == http.StatusOK || status == http.StatusCreated {
		return nil
	}
	if status != http.StatusUnprocessableEntity && status != http.StatusConflict && status != http.StatusBadRequest {
		return apperr.Upstreamf("identity_upsert", nil, "unexpected status %d: %s", status, body)
	}

	// Account already exists: look it up and reset the password.
	id, err := c.findUserIDByEmail(ctx, email)
	if err != nil {
		return err
	}
	status, body, err = c.do(ctx, http.MethodPut, "/admin/users/"+id, map[string]any{"password": password}, c.serviceKey)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return apperr.Upstreamf("identity_upsert", nil, "password reset failed with status %d: %s", status, body)
	}
	return nil
}

// PasswordGrant exchanges shadow-account credentials for a session.
func (c *Client) PasswordGrant(ctx context.Context, email, password string) (*Session, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	return c.tokenRequest(ctx, "password", map[string]string{"email": email, "password": password})
}

// RefreshGrant exchanges a refresh token for a fresh session.
func (c *Client) RefreshGrant(ctx context.Context, refreshToken string) (*Session, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	return c.tokenRequest(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (c *Client) tokenRequest(ctx context.Context, grantType string, payload map[string]string) (*Session, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/token?grant_type="+grantType, payload, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apperr.Upstreamf("identity_token", nil, "token exchange failed with status %d: %s", status, body)
	}
	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, apperr.Upstreamf("identity_token", err, "malformed token response")
	}
	return &session, nil
}

// GetUser resolves a bearer access token to the provider's user record.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodGet, "/user", nil, accessToken)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apperr.Upstreamf("identity_user", nil, "user lookup failed with status %d: %s", status, body)
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, apperr.Upstreamf("identity_user", err, "malformed user response")
	}
	return &user, nil
}

func (c *Client) findUserIDByEmail(ctx context.Context, email string) (string, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/admin/users?email="+url.QueryEscape(email), nil, c.serviceKey)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", apperr.Upstreamf("identity_lookup", nil, "user listing failed with status %d: %s", status, body)
	}
	var result struct {
		Users []User `json:"users"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperr.Upstreamf("identity_lookup", err, "malformed user listing")
	}
	for _, u := range result.Users {
		if strings.EqualFold(u.Email, email) {
			return u.ID, nil
		}
	}
	return "", apperr.Upstreamf("identity_lookup", nil, "shadow account %s not found after conflict", email)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, bearer string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, apperr.Upstreamf("identity", err, "request encode failed")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, apperr.Upstreamf("identity", err, "request build failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, apperr.Upstreamf("identity", err, fmt.Sprintf("%s %s failed", method, path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apperr.Upstreamf("identity", err, "response read failed")
	}
	return resp.StatusCode, data, nil
}
