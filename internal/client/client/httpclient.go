package client

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

	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/dmitrijs2005/employera/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader correlates client log lines with server log lines.
const RequestIDHeader = "X-Request-Id"

// maxBodySize caps how much of a response is read.
const maxBodySize = 1 << 20

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:8000/api"). timeout bounds each request.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", "", req, &resp); err != nil {
		return nil, err
	}
	if err := checkAuthResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for tokens. A 400 or 401 answer means the
// credentials were rejected and unwraps to ErrInvalidCredentials.
func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login/", "", req, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
			apiErr.Err = ErrInvalidCredentials
		}
		return nil, err
	}
	if err := checkAuthResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context, accessToken, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout/", accessToken, models.LogoutRequest{RefreshToken: refreshToken}, nil)
}

func (c *HTTPClient) VerifyToken(ctx context.Context, accessToken string) (*models.User, error) {
	var resp models.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify-token/", accessToken, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: verify-token without user", ErrUnexpectedResponse)
	}
	return resp.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, accessToken string, upd models.ProfileUpdate) (*models.User, error) {
	var resp models.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/auth/profile/", accessToken, upd, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: profile update without user", ErrUnexpectedResponse)
	}
	return resp.User, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, accessToken string, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/auth/change-password/", accessToken, req, nil)
}

func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	path := "/auth/check-email/?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func checkAuthResponse(resp *models.AuthResponse) error {
	if resp.User == nil || resp.Tokens == nil || resp.Tokens.Access == "" || resp.Tokens.Refresh == "" {
		return fmt.Errorf("%w: missing user or tokens", ErrUnexpectedResponse)
	}
	return nil
}

// do sends one JSON request. in may be nil for bodiless requests; out may be
// nil when the response body is irrelevant.
func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}
