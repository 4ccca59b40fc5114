package utils

import (
	"time"
)

// Session constants
const (
	// SessionCookieName is the name of the signed session cookie
	SessionCookieName = "vc_session"

	// SessionTTL is the default lifetime of a session cookie (7 days)
	SessionTTL = 7 * 24 * time.Hour

	// OAuthStateBytes is the number of random bytes in the OAuth anti-forgery state
	OAuthStateBytes = 8
)

// Selection constants
const (
	// MinDiscountPercent is the discount floor for any stored selection
	MinDiscountPercent = 3.0

	// MaxDiscountPercent is the upper clamp for discounts
	MaxDiscountPercent = 100.0
)

// Catalog pagination constants
const (
	DefaultCatalogPage    = 1
	DefaultCatalogPerPage = 50
	MaxCatalogPerPage     = 100
)

// Outbound timeouts for the identity provider and catalog API
const (
	TokenExchangeTimeout = 25 * time.Second
	ProfileFetchTimeout  = 20 * time.Second
	CatalogFetchTimeout  = 30 * time.Second
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

type contextKey string

// Request-scoped context keys set by the handlers
const (
	RequestIDKey contextKey = "request_id"
	UserAgentKey contextKey = "user_agent"
	IPAddressKey contextKey = "ip_address"
	EndpointKey  contextKey = "endpoint"
	VendorIDKey  contextKey = "vendor_id"
)

// RequestTimeout bounds database work done on behalf of a single request
const RequestTimeout = 30 * time.Second
