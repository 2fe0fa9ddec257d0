// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request-scoped logging, body size limits, CORS, panic
// recovery, metrics and tracing.
package middleware
