// Package middleware provides net/http middleware for the htmlkit fragment
// server.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry tracing middleware
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//
//   - htmlkit_requests_total: requests by route and status code
//
//   - htmlkit_request_duration_seconds: request duration by route
//
//   - htmlkit_render_errors_total: rendering failures by error code
//
//     m := middleware.NewMetrics(middleware.WithRegistry(reg))
//     r := chi.NewRouter()
//     r.Use(m.Handler)
//
// Routes are labelled with their chi route pattern, not the raw path, so
// label cardinality stays bounded.
//
// # OpenTelemetry Middleware
//
// The tracing middleware starts a server span per request and stores it in
// the request context:
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("htmlkit"),
//	))
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure the provider in main() before serving.
package middleware
