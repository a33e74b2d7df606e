package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// loadTimeout bounds a POST /users/{id}/load request. Zero means no
// additional timeout beyond the adapter's own.
var loadTimeout time.Duration

// SetLoadTimeout sets the load-user timeout (0 disables).
func SetLoadTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	loadTimeout = d
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

// Rate limiting of user loads, per client IP (opt-in).
var (
	loadRateRPS   float64
	loadRateBurst int
)

// SetLoadRateLimit limits POST /users/{id}/load per client. rps <= 0 disables.
func SetLoadRateLimit(rps float64, burst int) {
	if rps <= 0 {
		loadRateRPS, loadRateBurst = 0, 0
		return
	}
	if burst <= 0 {
		burst = 1
	}
	loadRateRPS, loadRateBurst = rps, burst
}

// trustProxy makes the router take the client address from X-Forwarded-For,
// X-Real-IP and True-Client-IP. Only enable it behind a proxy that sets them.
var trustProxy bool

// SetTrustProxy toggles trusting client-address headers from a proxy.
func SetTrustProxy(v bool) { trustProxy = v }
