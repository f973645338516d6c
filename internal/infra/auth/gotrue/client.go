// Package gotrue talks to the hosted identity provider's REST API.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"quill/config"
	"quill/internal/domain/entity"
	"quill/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

const (
	authPath = "/auth/v1"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 4 << 10
)

// APIError is a non-2xx answer from the identity provider.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identity provider returned %d (%s): %s", e.Status, e.Code, e.Message)
	}

	return fmt.Sprintf("identity provider returned %d: %s", e.Status, e.Message)
}

// statusText matches the errors gotrue-go returns for non-2xx answers.
var statusText = regexp.MustCompile(`(?s)^response status code (\d+)(?:: (.*))?$`)

// Client implements service.IdentityProvider against the /auth/v1 endpoints.
// Token refresh, user lookup and logout go through gotrue-go; the magic link
// and PKCE calls need parameters that library does not send.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	api        gotrue.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates an identity provider client for the configured project.
func NewClient(cfg *config.Config, logger *slog.Logger) service.IdentityProvider {
	return newClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, &http.Client{Timeout: cfg.Supabase.Timeout}, logger)
}

func newClient(baseURL, anonKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	endpoint := strings.TrimRight(baseURL, "/") + authPath

	return &Client{
		baseURL:    endpoint,
		anonKey:    anonKey,
		httpClient: httpClient,
		api:        gotrue.New("", anonKey).WithCustomGoTrueURL(endpoint),
		logger:     logger,
		now:        time.Now,
	}
}

// contextTransport attaches ctx to requests built by gotrue-go, which has no
// context parameter of its own.
type contextTransport struct {
	ctx  context.Context //nolint:containedctx // lives for one call
	next http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.WithContext(t.ctx))
}

// apiFor returns the gotrue-go client bound to ctx and, when set, accessToken.
func (c *Client) apiFor(ctx context.Context, accessToken string) gotrue.Client {
	next := c.httpClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	httpClient := *c.httpClient
	httpClient.Transport = contextTransport{ctx: ctx, next: next}

	api := c.api.WithClient(httpClient)
	if accessToken != "" {
		api = api.WithToken(accessToken)
	}

	return api
}

type otpRequest struct {
	Email               string `json:"email"`
	CreateUser          bool   `json:"create_user"`
	CodeChallenge       string `json:"code_challenge,omitempty"`
	CodeChallengeMethod string `json:"code_challenge_method,omitempty"`
}

type errorResponse struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SendOTP asks the provider to email a magic link. New users are created on first sign-in.
func (c *Client) SendOTP(ctx context.Context, email, redirectTo, codeChallenge string) error {
	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}

	body := otpRequest{Email: email, CreateUser: true}
	if codeChallenge != "" {
		body.CodeChallenge = codeChallenge
		body.CodeChallengeMethod = "s256"
	}

	if err := c.do(ctx, http.MethodPost, "/otp", query, "", body, nil); err != nil {
		return errors.Wrap(err, "send otp")
	}

	c.logger.Debug("Magic link requested", slog.String("redirect_to", redirectTo))

	return nil
}

// AuthorizeURL builds the URL the browser is sent to for an OAuth sign-in.
func (c *Client) AuthorizeURL(provider, redirectTo, codeChallenge string) string {
	query := url.Values{}
	query.Set("provider", provider)
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}
	if codeChallenge != "" {
		query.Set("code_challenge", codeChallenge)
		query.Set("code_challenge_method", "s256")
	}

	return c.baseURL + "/authorize?" + query.Encode()
}

// ExchangeCode trades an authorization code and its PKCE verifier for a session.
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (*entity.Session, error) {
	body := map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	}

	var resp types.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/token", url.Values{"grant_type": {"pkce"}}, "", body, &resp); err != nil {
		return nil, errors.Wrap(err, "exchange code")
	}

	return c.toSession(&resp.Session)
}

// Refresh obtains a new session from a refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	resp, err := c.apiFor(ctx, "").RefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(toAPIError(err), "refresh session")
	}

	return c.toSession(&resp.Session)
}

// GetUser validates accessToken with the provider.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*service.IdentityUser, error) {
	u, err := c.apiFor(ctx, accessToken).GetUser()
	if err != nil {
		return nil, errors.Wrap(toAPIError(err), "get user")
	}

	return &service.IdentityUser{ID: u.ID, Email: u.Email}, nil
}

// SignOut revokes the refresh tokens of the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.apiFor(ctx, accessToken).Logout(); err != nil {
		return errors.Wrap(toAPIError(err), "sign out")
	}

	return nil
}

func (c *Client) toSession(resp *types.Session) (*entity.Session, error) {
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return nil, errors.New("token response without tokens")
	}
	if resp.User.ID == uuid.Nil {
		return nil, errors.New("token response without user id")
	}

	expiresAt := time.Unix(resp.ExpiresAt, 0)
	if resp.ExpiresAt == 0 {
		expiresAt = c.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	return &entity.Session{
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// do sends one request. bearer defaults to the anon key; out may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, bearer string, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return errors.WithStack(err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode identity provider response")
	}

	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return newAPIError(resp.StatusCode, raw)
}

// toAPIError recovers the status and body from a gotrue-go error.
func toAPIError(err error) error {
	m := statusText.FindStringSubmatch(err.Error())
	if m == nil {
		return errors.WithStack(err)
	}
	status, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return errors.WithStack(err)
	}

	return newAPIError(status, []byte(m[2]))
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = firstNonEmpty(strings.TrimSpace(string(raw)), http.StatusText(status))

		return apiErr
	}

	apiErr.Code = firstNonEmpty(body.ErrorCode, body.Error)
	if apiErr.Code == "" {
		if code, ok := body.Code.(string); ok {
			apiErr.Code = code
		}
	}
	apiErr.Message = firstNonEmpty(body.Msg, body.Message, body.ErrorDescription, http.StatusText(status))

	return apiErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
