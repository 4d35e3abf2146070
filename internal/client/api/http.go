package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks JSON over HTTP to the dashboard backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// detailBody is the error envelope the backend uses for non-2xx responses.
type detailBody struct {
	Detail string `json:"detail"`
}

// doJSON issues one request and decodes the response into out (when out is
// non-nil). Transport failures map to ErrUnavailable; non-2xx statuses map
// to *StatusError carrying the server's message.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(raw))
		var db detailBody
		if err := json.Unmarshal(raw, &db); err == nil && db.Detail != "" {
			msg = db.Detail
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*Profile, error) {
	req := map[string]string{"username": username, "email": email, "password": password}
	var p Profile
	if err := c.doJSON(ctx, http.MethodPost, "/register", "", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*Token, error) {
	req := map[string]string{"username": username, "password": password}
	var t Token
	if err := c.doJSON(ctx, http.MethodPost, "/login", "", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*Profile, error) {
	var p Profile
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateUsername(ctx context.Context, token, username, email string) (*Profile, error) {
	req := map[string]string{"username": username, "email": email}
	var p Profile
	if err := c.doJSON(ctx, http.MethodPut, "/users/update-username", token, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	req := map[string]string{"current_password": currentPassword, "new_password": newPassword}
	return c.doJSON(ctx, http.MethodPut, "/users/me/password", token, req, nil)
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/me", token, nil, nil)
}
