package businessflow

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/amirphl/vendor-campaigns/app/services"
	"github.com/amirphl/vendor-campaigns/config"
	testutil "github.com/amirphl/vendor-campaigns/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFlowForTest(client *testutil.FakeBasalamClient) AuthFlow {
	return NewAuthFlow(client, config.AdminConfig{Phones: []string{"09120000000"}, PhoneField: "mobile"})
}

func TestBeginLogin(t *testing.T) {
	flow := newAuthFlowForTest(&testutil.FakeBasalamClient{})

	start, err := flow.BeginLogin(context.Background())
	require.NoError(t, err)

	assert.Len(t, start.Session.OAuthState, 16)
	assert.False(t, start.Session.IsLoggedIn())
	assert.True(t, strings.HasSuffix(start.RedirectURL, "state="+start.Session.OAuthState))
}

func TestCompleteLoginOrderOfChecks(t *testing.T) {
	client := &testutil.FakeBasalamClient{}
	flow := newAuthFlowForTest(client)
	pending := &services.Session{OAuthState: "abc"}

	_, err := flow.CompleteLogin(context.Background(), pending, "", "wrong", nil)
	assert.True(t, IsStateMismatch(err), "state is checked before code")

	_, err = flow.CompleteLogin(context.Background(), pending, "code", "", nil)
	assert.True(t, IsStateMismatch(err))

	_, err = flow.CompleteLogin(context.Background(), &services.Session{}, "code", "", nil)
	assert.True(t, IsStateMismatch(err))

	_, err = flow.CompleteLogin(context.Background(), pending, "", "abc", nil)
	assert.True(t, IsMissingCode(err))

	assert.Empty(t, client.ExchangedCodes)
}

func TestCompleteLoginSuccess(t *testing.T) {
	tests := []struct {
		name      string
		profile   string
		wantAdmin bool
	}{
		{"admin phone", `{"id":1,"name":"Admin","mobile":"09120000000","vendor":{"id":42}}`, true},
		{"regular vendor", `{"id":2,"name":"Vendor","mobile":"09350000000","vendor":{"id":"43"}}`, false},
		{"phone in other field", `{"id":3,"phone":"09120000000","vendor":{"id":44}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &testutil.FakeBasalamClient{
				Token:   &services.TokenResponse{AccessToken: "at", RefreshToken: "rt"},
				Profile: json.RawMessage(tt.profile),
			}
			flow := newAuthFlowForTest(client)

			session, err := flow.CompleteLogin(context.Background(), &services.Session{OAuthState: "s1"}, "the-code", "s1", nil)
			require.NoError(t, err)

			assert.Equal(t, []string{"the-code"}, client.ExchangedCodes)
			assert.Equal(t, "at", session.AccessToken)
			assert.Equal(t, "rt", session.RefreshToken)
			assert.Equal(t, tt.wantAdmin, session.IsAdmin)
			assert.Empty(t, session.OAuthState)
			assert.True(t, session.IsLoggedIn())
			assert.JSONEq(t, tt.profile, string(session.User))
			require.Len(t, session.Flashes, 1)
			assert.Equal(t, services.FlashSuccess, session.Flashes[0].Category)
		})
	}
}

func TestCompleteLoginUpstreamFailures(t *testing.T) {
	pending := &services.Session{OAuthState: "s"}

	t.Run("token exchange", func(t *testing.T) {
		client := &testutil.FakeBasalamClient{TokenErr: &services.UpstreamError{Op: "token exchange", StatusCode: http.StatusBadRequest}}
		_, err := newAuthFlowForTest(client).CompleteLogin(context.Background(), pending, "c", "s", nil)
		assert.True(t, IsTokenExchangeFailed(err))
		assert.Equal(t, http.StatusBadRequest, UpstreamStatusOf(err))
	})

	t.Run("missing access token", func(t *testing.T) {
		client := &testutil.FakeBasalamClient{Token: &services.TokenResponse{}}
		_, err := newAuthFlowForTest(client).CompleteLogin(context.Background(), pending, "c", "s", nil)
		assert.True(t, IsTokenExchangeFailed(err))
	})

	t.Run("profile fetch", func(t *testing.T) {
		client := &testutil.FakeBasalamClient{ProfileErr: &services.UpstreamError{Op: "profile fetch", StatusCode: http.StatusUnauthorized}}
		_, err := newAuthFlowForTest(client).CompleteLogin(context.Background(), pending, "c", "s", nil)
		assert.True(t, IsProfileFetchFailed(err))
		assert.Equal(t, http.StatusUnauthorized, UpstreamStatusOf(err))
	})

	t.Run("not a vendor", func(t *testing.T) {
		client := &testutil.FakeBasalamClient{Profile: json.RawMessage(`{"id":5,"vendor":null}`)}
		_, err := newAuthFlowForTest(client).CompleteLogin(context.Background(), pending, "c", "s", nil)
		assert.True(t, IsNotAVendor(err))
	})
}
