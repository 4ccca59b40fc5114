package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/vendor-campaigns/config"
	"golang.org/x/time/rate"
)

const maxUpstreamBody = 10 << 20 // 10MB

// ErrInvalidUpstreamPayload is returned when the remote API answers 2xx with an unusable body
var ErrInvalidUpstreamPayload = errors.New("invalid upstream payload")

// UpstreamError carries the status of a failed call to the Basalam API
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Body)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

// UpstreamStatus extracts the remote HTTP status from err, or 0 when there is none
func UpstreamStatus(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}

// TokenResponse is the OAuth token endpoint answer
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserProfile is the authenticated user's profile as returned by /users/me
type UserProfile struct {
	Raw    json.RawMessage
	fields map[string]any
}

// ParseUserProfile decodes a raw profile payload
func ParseUserProfile(raw []byte) (*UserProfile, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpstreamPayload, err)
	}
	return &UserProfile{Raw: json.RawMessage(raw), fields: fields}, nil
}

// VendorID returns the vendor.id of the profile, or "" when the user is not a vendor
func (p *UserProfile) VendorID() string {
	vendor, ok := p.fields["vendor"].(map[string]any)
	if !ok {
		return ""
	}
	return scalarString(vendor["id"])
}

// Field returns a top-level scalar profile field as a string
func (p *UserProfile) Field(name string) string {
	return scalarString(p.fields[name])
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// BasalamClient performs the OAuth authorization code flow against Basalam SSO
type BasalamClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	FetchProfile(ctx context.Context, accessToken string) (*UserProfile, error)
}

// CatalogClient lists a vendor's products from the remote catalog API
type CatalogClient interface {
	ListVendorProducts(ctx context.Context, accessToken, vendorID string, page, perPage int) (json.RawMessage, error)
}

// BasalamClientImpl implements BasalamClient and CatalogClient
type BasalamClientImpl struct {
	oauth   config.OAuthConfig
	catalog config.CatalogConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewBasalamClient creates a new Basalam API client
func NewBasalamClient(oauth config.OAuthConfig, catalog config.CatalogConfig, httpClient *http.Client) *BasalamClientImpl {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	var limiter *rate.Limiter
	if catalog.RateLimit > 0 {
		burst := catalog.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(catalog.RateLimit), burst)
	}
	return &BasalamClientImpl{
		oauth:   oauth,
		catalog: catalog,
		client:  httpClient,
		limiter: limiter,
	}
}

// AuthorizeURL builds the SSO redirect for the given anti-forgery state
func (c *BasalamClientImpl) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.oauth.ClientID)
	params.Set("scope", c.oauth.Scopes)
	params.Set("redirect_uri", c.oauth.RedirectURI)
	params.Set("state", state)
	params.Set("response_type", "code")

	sep := "?"
	if strings.Contains(c.oauth.AuthorizeURL, "?") {
		sep = "&"
	}
	return c.oauth.AuthorizeURL + sep + params.Encode()
}

// ExchangeCode trades an authorization code for an access/refresh token pair
func (c *BasalamClientImpl) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	ctx, cancel := withTimeout(ctx, c.oauth.TokenTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.oauth.ClientID)
	form.Set("client_secret", c.oauth.ClientSecret)
	form.Set("redirect_uri", c.oauth.RedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauth.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "token exchange")
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, &UpstreamError{Op: "token exchange", StatusCode: http.StatusOK, Body: "invalid JSON response"}
	}
	return &tok, nil
}

// FetchProfile returns the profile of the token owner
func (c *BasalamClientImpl) FetchProfile(ctx context.Context, accessToken string) (*UserProfile, error) {
	ctx, cancel := withTimeout(ctx, c.oauth.ProfileTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.oauth.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "profile fetch")
	if err != nil {
		return nil, err
	}

	profile, err := ParseUserProfile(body)
	if err != nil {
		return nil, &UpstreamError{Op: "profile fetch", StatusCode: http.StatusOK, Body: err.Error()}
	}
	return profile, nil
}

// ListVendorProducts returns one page of the vendor's products as the raw upstream JSON
func (c *BasalamClientImpl) ListVendorProducts(ctx context.Context, accessToken, vendorID string, page, perPage int) (json.RawMessage, error) {
	ctx, cancel := withTimeout(ctx, c.catalog.Timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &UpstreamError{Op: "catalog", Body: "rate limiter: " + err.Error()}
		}
	}

	endpoint := fmt.Sprintf("%s/%s/products", strings.TrimRight(c.catalog.VendorsURL, "/"), url.PathEscape(vendorID))
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "catalog")
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{Op: "catalog", StatusCode: http.StatusOK, Body: "invalid JSON response"}
	}
	return json.RawMessage(body), nil
}

// do sends req and returns the body of a 2xx response; anything else is an UpstreamError
func (c *BasalamClientImpl) do(req *http.Request, op string) ([]byte, error) {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: op, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: "failed to read body: " + err.Error()}
	}

	observeUpstream(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	return body, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
