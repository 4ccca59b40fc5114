package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/amirphl/vendor-campaigns/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBasalamClient(baseURL string) *BasalamClientImpl {
	oauth := config.OAuthConfig{
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		RedirectURI:    "http://localtest.ir:5000/auth/callback",
		Scopes:         "customer.profile.read vendor.product.read",
		AuthorizeURL:   baseURL + "/accounts/sso",
		TokenURL:       baseURL + "/oauth/token",
		ProfileURL:     baseURL + "/users/me",
		TokenTimeout:   5 * time.Second,
		ProfileTimeout: 5 * time.Second,
	}
	catalog := config.CatalogConfig{
		VendorsURL: baseURL + "/v3/vendors/",
		Timeout:    5 * time.Second,
	}
	return NewBasalamClient(oauth, catalog, nil)
}

func TestAuthorizeURL(t *testing.T) {
	client := newTestBasalamClient("https://sso.example")

	raw := client.AuthorizeURL("abcdef0123456789")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/accounts/sso", u.Path)
	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "customer.profile.read vendor.product.read", q.Get("scope"))
	assert.Equal(t, "http://localtest.ir:5000/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "abcdef0123456789", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "http://localtest.ir:5000/auth/callback", r.PostForm.Get("redirect_uri"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	tok, err := newTestBasalamClient(srv.URL).ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "at", tok.AccessToken)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.Equal(t, int64(3600), tok.ExpiresIn)
}

func TestExchangeCodeUpstreamFailure(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "rejected code", status: http.StatusBadRequest, body: `{"error":"invalid_grant"}`, wantStatus: http.StatusBadRequest},
		{name: "server error", status: http.StatusBadGateway, body: "bad gateway", wantStatus: http.StatusBadGateway},
		{name: "invalid json", status: http.StatusOK, body: "<html>", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestBasalamClient(srv.URL).ExchangeCode(context.Background(), "code")
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, UpstreamStatus(err))
		})
	}
}

func TestExchangeCodeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := newTestBasalamClient(baseURL).ExchangeCode(context.Background(), "code")
	require.Error(t, err)
	assert.Equal(t, 0, UpstreamStatus(err))
}

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":7,"name":"Ali","mobile":"09120000000","vendor":{"id":123456789012}}`))
	}))
	defer srv.Close()

	profile, err := newTestBasalamClient(srv.URL).FetchProfile(context.Background(), "at")
	require.NoError(t, err)
	assert.Equal(t, "123456789012", profile.VendorID())
	assert.Equal(t, "09120000000", profile.Field("mobile"))
	assert.Equal(t, "7", profile.Field("id"))
	assert.Equal(t, "", profile.Field("missing"))
}

func TestParseUserProfileWithoutVendor(t *testing.T) {
	profile, err := ParseUserProfile([]byte(`{"id":1,"vendor":null}`))
	require.NoError(t, err)
	assert.Equal(t, "", profile.VendorID())

	profile, err = ParseUserProfile([]byte(`{"id":1,"vendor":{"id":"55"}}`))
	require.NoError(t, err)
	assert.Equal(t, "55", profile.VendorID())

	_, err = ParseUserProfile([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalidUpstreamPayload)
}

func TestListVendorProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/vendors/42/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"id":1,"title":"Rug"}],"total_count":1}`))
	}))
	defer srv.Close()

	payload, err := newTestBasalamClient(srv.URL).ListVendorProducts(context.Background(), "at", "42", 2, 25)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Len(t, body["data"], 1)
}

func TestListVendorProductsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := newTestBasalamClient(srv.URL)

	_, err := client.ListVendorProducts(context.Background(), "at", "42", 1, 50)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, UpstreamStatus(err))

	_, err = client.ListVendorProducts(context.Background(), "at", "42", 2, 50)
	require.Error(t, err)
	assert.Equal(t, http.StatusOK, UpstreamStatus(err))
}

func TestNoopCatalogCache(t *testing.T) {
	cache := NewCatalogCache(nil, "vc:", time.Minute)
	cache.Set(context.Background(), "1", 1, 50, json.RawMessage(`{}`))
	_, ok := cache.Get(context.Background(), "1", 1, 50)
	assert.False(t, ok)
}
