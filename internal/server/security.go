package server

import "net/http"

// SecurityConfig controls the HTTP hardening middleware.
type SecurityConfig struct {
	// EnableCORS toggles CORS header emission.
	EnableCORS bool
	// AllowedOrigins lists acceptable Origin values; "*" matches any.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised in preflight responses.
	AllowedMethods []string
}

// DefaultSecurityConfig returns the configuration used by the exporter:
// CORS enabled for any origin, read-only methods.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
}

// SecurityMiddleware wraps next with security headers and CORS handling.
//
// Security headers are set unconditionally. CORS headers are added only
// when the request's Origin matches an allowed origin (or the wildcard).
// OPTIONS preflight requests are answered directly with 204 and never
// reach the next handler.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)

		if config.EnableCORS {
			setCORSHeaders(w, r, config)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// setSecurityHeaders applies the standard hardening headers to the response.
func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// setCORSHeaders emits CORS headers when the request origin is allowed.
func setCORSHeaders(w http.ResponseWriter, r *http.Request, config SecurityConfig) {
	origin := r.Header.Get("Origin")

	allowed := ""
	for _, o := range config.AllowedOrigins {
		if o == "*" {
			allowed = "*"
			break
		}
		if o == origin && origin != "" {
			allowed = origin
			break
		}
	}
	if allowed == "" {
		return
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", allowed)
	h.Set("Access-Control-Allow-Methods", joinMethods(config.AllowedMethods))
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
}

func joinMethods(methods []string) string {
	out := ""
	for i, m := range methods {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
