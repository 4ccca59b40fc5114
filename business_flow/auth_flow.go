package businessflow

import (
	"context"
	"log"
	"net/http"

	"github.com/amirphl/vendor-campaigns/app/services"
	"github.com/amirphl/vendor-campaigns/config"
)

// LoginStart is the pending session and provider redirect produced by BeginLogin
type LoginStart struct {
	Session     *services.Session
	RedirectURL string
}

// AuthFlow handles the OAuth authorization code login of vendors
type AuthFlow interface {
	BeginLogin(ctx context.Context) (*LoginStart, error)
	CompleteLogin(ctx context.Context, pending *services.Session, code, state string, metadata *ClientMetadata) (*services.Session, error)
}

// AuthFlowImpl implements AuthFlow
type AuthFlowImpl struct {
	client      services.BasalamClient
	adminConfig config.AdminConfig
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(client services.BasalamClient, adminConfig config.AdminConfig) AuthFlow {
	return &AuthFlowImpl{
		client:      client,
		adminConfig: adminConfig,
	}
}

// BeginLogin creates a fresh pending session holding a new anti-forgery state
func (f *AuthFlowImpl) BeginLogin(ctx context.Context) (*LoginStart, error) {
	state, err := services.NewOAuthState()
	if err != nil {
		return nil, NewBusinessError("OAUTH_STATE_FAILED", "Failed to start login", err)
	}

	return &LoginStart{
		Session:     &services.Session{OAuthState: state},
		RedirectURL: f.client.AuthorizeURL(state),
	}, nil
}

// CompleteLogin validates the callback, exchanges the code and builds a brand new session
func (f *AuthFlowImpl) CompleteLogin(ctx context.Context, pending *services.Session, code, state string, metadata *ClientMetadata) (*services.Session, error) {
	if state == "" || pending == nil || pending.OAuthState == "" || state != pending.OAuthState {
		return nil, ErrStateMismatch
	}
	if code == "" {
		return nil, ErrMissingCode
	}

	tok, err := f.client.ExchangeCode(ctx, code)
	if err != nil {
		log.Printf("oauth token exchange failed %s: %v", metadata, err)
		return nil, &UpstreamFailure{Kind: ErrTokenExchangeFailed, StatusCode: services.UpstreamStatus(err), Err: err}
	}
	if tok.AccessToken == "" {
		return nil, &UpstreamFailure{Kind: ErrTokenExchangeFailed, StatusCode: http.StatusOK}
	}

	profile, err := f.client.FetchProfile(ctx, tok.AccessToken)
	if err != nil {
		log.Printf("oauth profile fetch failed %s: %v", metadata, err)
		return nil, &UpstreamFailure{Kind: ErrProfileFetchFailed, StatusCode: services.UpstreamStatus(err), Err: err}
	}

	vendorID := profile.VendorID()
	if vendorID == "" {
		return nil, ErrNotAVendor
	}

	session := &services.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		User:         profile.Raw,
		VendorID:     vendorID,
		IsAdmin:      f.adminConfig.IsAdminPhone(profile.Field(f.adminConfig.PhoneField)),
	}
	session.AddFlash(services.FlashSuccess, "ورود موفق.")

	loginsTotal.WithLabelValues(boolLabel(session.IsAdmin)).Inc()
	return session, nil
}
