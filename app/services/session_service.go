// Package services provides external service integrations and technical concerns like sessions and the Basalam API
package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/vendor-campaigns/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session service error constants
var (
	ErrSessionExpired = errors.New("session has expired")
	ErrSessionInvalid = errors.New("invalid session")
)

// Flash categories understood by the pages
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the whole client-side session state carried by the signed cookie
type Session struct {
	OAuthState   string          `json:"oauth_state,omitempty"`
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
	VendorID     string          `json:"vendor_id,omitempty"`
	IsAdmin      bool            `json:"is_admin,omitempty"`
	Flashes      []Flash         `json:"flashes,omitempty"`
}

// IsLoggedIn reports whether the session belongs to an authenticated vendor
func (s *Session) IsLoggedIn() bool {
	return s != nil && s.AccessToken != "" && s.VendorID != ""
}

// AddFlash queues a message for the next page render
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns and clears the queued messages
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// DisplayName returns a human readable name from the stored profile
func (s *Session) DisplayName() string {
	if s == nil || len(s.User) == 0 {
		return ""
	}
	var p struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(s.User, &p); err != nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// SessionService signs and verifies the session cookie value
type SessionService interface {
	Encode(session *Session) (string, error)
	Decode(token string) (*Session, error)
	TTL() time.Duration
}

type sessionClaims struct {
	Session
	jwt.RegisteredClaims
}

// SessionServiceImpl implements SessionService with HS256 JWTs
type SessionServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	now       func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(secretKey string, ttl time.Duration, issuer string) (SessionService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &SessionServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		issuer:    issuer,
		now:       utils.UTCNow,
	}, nil
}

// TTL returns the lifetime of an encoded session
func (s *SessionServiceImpl) TTL() time.Duration {
	return s.ttl
}

// Encode signs the session into a compact JWT
func (s *SessionServiceImpl) Encode(session *Session) (string, error) {
	if session == nil {
		session = &Session{}
	}
	now := s.now()
	claims := sessionClaims{
		Session: *session,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature, issuer and expiry and returns the session
func (s *SessionServiceImpl) Decode(tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, ErrSessionInvalid
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	if !token.Valid {
		return nil, ErrSessionInvalid
	}

	session := claims.Session
	return &session, nil
}

// NewOAuthState returns a random hex anti-forgery token
func NewOAuthState() (string, error) {
	b := make([]byte, utils.OAuthStateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
