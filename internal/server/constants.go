package server

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Request limits
const (
	// MaxRequestBodyBytes bounds request bodies. Step syncs and friend
	// requests are tiny, so 1MB leaves generous headroom.
	MaxRequestBodyBytes = 1 << 20

	// Rate limiting and alerting thresholds for the activity detector.
	RateLimitWindowRequests  = 1000
	FailedAuthAlertThreshold = 5
)

// PublicPaths lists path prefixes that bypass authentication. Health
// probes and the Prometheus scraper do not carry the API key.
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
