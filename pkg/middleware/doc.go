// Package middleware provides the net/http middleware the server wraps its
// router with:
//
//   - Prometheus request metrics labelled by route pattern
//   - OpenTelemetry server spans
//   - structured access logging and panic recovery via log/slog
//
// Route labels come from chi's route context, so they are the registered
// pattern ("/pkg/*") rather than the raw path. This keeps metric
// cardinality bounded no matter what clients request.
//
//	r := chi.NewRouter()
//	r.Use(
//	    middleware.Recoverer(logger),
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	    middleware.Logger(logger),
//	)
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests no route pattern matched.
const unmatchedRoute = "unmatched"

// routePattern returns the chi pattern that served r. It is only complete
// once the router has run.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
