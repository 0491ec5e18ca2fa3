package controller

import (
	"net/http"
	"slices"
	"strconv"
	"time"
)

const (
	corsAllowHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, Cache-Control, Origin, X-Request-Id"
	corsAllowMethods = "GET, POST, OPTIONS"
)

// CORSOptions configures NewCORS.
type CORSOptions struct {
	// AllowedOrigins lists the origins browsers may call the API from.
	// "*" or an empty list allows any origin.
	AllowedOrigins []string
	// MaxAge is how long browsers may cache a preflight answer.
	MaxAge time.Duration
}

// NewCORS returns a middleware that answers CORS preflight requests with
// 204 No Content and decorates every other response with the CORS headers
// for allowed origins. Requests from other origins pass through untouched so
// the browser rejects them.
func NewCORS(opts CORSOptions) func(http.Handler) http.Handler {
	anyOrigin := len(opts.AllowedOrigins) == 0 || slices.Contains(opts.AllowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()

			switch {
			case anyOrigin:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(opts.AllowedOrigins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			default:
				next.ServeHTTP(w, r)

				return
			}
			h.Set("Access-Control-Expose-Headers", "X-Request-Id")

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)

				return
			}

			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			if opts.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(opts.MaxAge.Seconds())))
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
