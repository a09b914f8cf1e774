// Package remote implements auth.Directory against the hosted identity
// service over HTTP/JSON. The provider's wire vocabulary (error codes,
// token format) stays inside this package; callers only ever see the
// auth sentinel errors.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

const (
	requestIDHeader     = "X-Request-ID"
	authorizationHeader = "Authorization"

	defaultTimeout = 10 * time.Second
)

// Config holds the remote backend settings.
type Config struct {
	// BaseURL is the root of the identity service, e.g. https://api.example.edu.
	BaseURL string
	// Timeout bounds every request. Zero means the default.
	Timeout time.Duration
}

// Client talks to the identity service. It implements auth.Directory.
type Client struct {
	base *url.URL
	http *http.Client
	log  logging.Logger

	// bearer token from the last successful login, sent on mutating calls
	token  string
	expiry time.Time
}

var _ auth.Directory = (*Client)(nil)

// New builds a client. httpClient may be nil.
func New(cfg Config, log logging.Logger, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q: scheme and host required", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout
	return &Client{
		base: base,
		http: httpClient,
		log:  log.With("component", "remote"),
	}, nil
}

// accountPayload is the provider's account shape. Field names follow the
// provider API, which happens to match the local record layout.
type accountPayload struct {
	FullName    string `json:"fullName"`
	Username    string `json:"username,omitempty"`
	NationalID  string `json:"nationalId"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (p accountPayload) record() *models.UserRecord {
	return &models.UserRecord{
		FullName:    p.FullName,
		Username:    p.Username,
		NationalID:  p.NationalID,
		PhoneNumber: p.PhoneNumber,
		Email:       p.Email,
		CreatedAt:   p.CreatedAt,
	}
}

type sessionResponse struct {
	IDToken string         `json:"idToken"`
	Account accountPayload `json:"account"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Create registers the account with the provider.
func (c *Client) Create(ctx context.Context, rec models.UserRecord, password string) (*models.UserRecord, error) {
	payload := accountPayload{
		FullName:    rec.FullName,
		Username:    rec.Username,
		NationalID:  rec.NationalID,
		PhoneNumber: rec.PhoneNumber,
		Email:       rec.Email,
		Password:    password,
		CreatedAt:   rec.CreatedAt,
	}
	var created accountPayload
	if err := c.do(ctx, http.MethodPost, "/v1/accounts", payload, &created); err != nil {
		return nil, err
	}
	return created.record(), nil
}

// Authenticate opens a session with the provider and keeps the returned
// ID token for subsequent authorized calls.
func (c *Client) Authenticate(ctx context.Context, nationalID, password string) (*models.UserRecord, error) {
	payload := struct {
		NationalID string `json:"nationalId"`
		Password   string `json:"password"`
	}{NationalID: nationalID, Password: password}

	var sess sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", payload, &sess); err != nil {
		return nil, err
	}
	c.adoptToken(ctx, sess.IDToken)
	return sess.Account.record(), nil
}

// Lookup fetches the account by national ID.
func (c *Client) Lookup(ctx context.Context, nationalID string) (*models.UserRecord, error) {
	var acc accountPayload
	if err := c.do(ctx, http.MethodGet, "/v1/accounts/"+url.PathEscape(nationalID), nil, &acc); err != nil {
		return nil, err
	}
	return acc.record(), nil
}

// UpdatePassword replaces the account password.
func (c *Client) UpdatePassword(ctx context.Context, nationalID, newPassword string) error {
	payload := struct {
		Password string `json:"password"`
	}{Password: newPassword}
	path := "/v1/accounts/" + url.PathEscape(nationalID) + "/password"
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}

// Delete removes the account.
func (c *Client) Delete(ctx context.Context, nationalID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/accounts/"+url.PathEscape(nationalID), nil, nil)
}

// Ping probes the provider's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/health", nil, nil)
}

// adoptToken parses the ID token without verifying its signature. The
// client is not the audience that must trust the token; it only reads
// subject and expiry for logging and for dropping stale tokens.
func (c *Client) adoptToken(ctx context.Context, token string) {
	c.token = token
	c.expiry = time.Time{}
	if token == "" {
		return
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		c.log.Warn(ctx, "unparseable id token", "error", err)
		return
	}
	sub, _ := parsed.Claims.GetSubject()
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		c.expiry = exp.Time
	}
	c.log.Debug(ctx, "session token adopted", "subject", sub, "expires", c.expiry)
}

// bearer returns the current token, discarding it once expired.
func (c *Client) bearer() string {
	if c.token != "" && !c.expiry.IsZero() && time.Now().After(c.expiry) {
		c.token = ""
		c.expiry = time.Time{}
	}
	return c.token
}

// do performs one JSON round trip. Non-2xx responses are decoded as
// provider errors and mapped to auth sentinels.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set(authorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(ctx, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError maps the provider's error vocabulary onto auth sentinels.
// The mapping is closed: an unrecognised code is a plain error, which the
// auth flow reports as a storage failure, never as a business outcome.
func (c *Client) decodeError(ctx context.Context, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var pe errorResponse
	if err := json.Unmarshal(raw, &pe); err == nil && pe.Code != "" {
		c.log.Debug(ctx, "provider error", "status", resp.StatusCode, "code", pe.Code)
		switch pe.Code {
		case "ID_EXISTS":
			return auth.ErrDuplicateNationalID
		case "USERNAME_EXISTS":
			return auth.ErrDuplicateUsername
		case "INVALID_CREDENTIALS":
			return auth.ErrInvalidCredentials
		case "USER_NOT_FOUND":
			return auth.ErrUserNotFound
		default:
			return fmt.Errorf("provider error %s (http %d)", pe.Code, resp.StatusCode)
		}
	}
	return fmt.Errorf("provider returned http %d", resp.StatusCode)
}
