// Package controller holds the HTTP plumbing shared by every route: CORS, a
// request-scoped logger with request ids, request metrics and profiling.
package controller
