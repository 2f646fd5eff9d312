package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/cors"
)

const corsMaxAge = 600

var corsAllowMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// newCORS builds the CORS policy from the configured origins. Trailing
// slashes are dropped so "http://host/" matches the browser's "http://host".
func newCORS(origins []string) *cors.Cors {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			allowed = append(allowed, o)
		}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: corsAllowMethods,
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		MaxAge:         corsMaxAge,
	})
}

// withCORS applies the CORS policy and rejects OPTIONS requests from
// origins outside it with a 403 error envelope.
func (s *Server) withCORS(next http.Handler) http.Handler {
	c := newCORS(s.corsOrigins)
	handler := c.Handler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if r.Method == http.MethodOptions && origin != "" && !c.OriginAllowed(r) {
			w.Header().Add("Vary", "Origin")
			s.writeErrorReq(w, r, http.StatusForbidden, forbiddenCode(fmt.Errorf("origin %q is not allowed", origin), ErrCodeForbiddenOrigin))
			return
		}
		handler.ServeHTTP(w, r)
	})
}
