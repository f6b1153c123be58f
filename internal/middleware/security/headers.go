// Package security applies standard security headers to every response.
package security

import "net/http"

// HeadersConfig holds the header values applied to responses.
type HeadersConfig struct {
	CSP                 string
	XFrameOptions       string
	XContentTypeOptions string
	ReferrerPolicy      string
	CrossOriginOpener   string
	CrossOriginResource string
}

// DefaultHeadersConfig returns defaults suitable for a local JSON API.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		CSP:                 "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		XFrameOptions:       "DENY",
		XContentTypeOptions: "nosniff",
		ReferrerPolicy:      "strict-origin-when-cross-origin",
		CrossOriginOpener:   "same-origin",
		CrossOriginResource: "same-origin",
	}
}

// HeadersMiddleware applies the configured headers.
type HeadersMiddleware struct {
	config HeadersConfig
}

func NewHeadersMiddleware(config HeadersConfig) *HeadersMiddleware {
	return &HeadersMiddleware{config: config}
}

// Wrap sets the headers before the handler writes anything.
func (m *HeadersMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", m.config.CSP)
		h.Set("X-Frame-Options", m.config.XFrameOptions)
		h.Set("X-Content-Type-Options", m.config.XContentTypeOptions)
		h.Set("Referrer-Policy", m.config.ReferrerPolicy)
		h.Set("Cross-Origin-Opener-Policy", m.config.CrossOriginOpener)
		h.Set("Cross-Origin-Resource-Policy", m.config.CrossOriginResource)
		next.ServeHTTP(w, r)
	})
}
