package server

// Route path constants
// All API routes are defined here to ensure consistency and prevent typos.
// Trailing slashes are part of the API surface the browser dashboard
// calls; do not strip them.
const (
	// Auth Routes
	RouteAuthRegister = "/api/auth/register/"
	RouteAuthLogin    = "/api/auth/login/"
	RouteAuthRefresh  = "/api/auth/refresh/"
	RouteAuthLogout   = "/api/auth/logout/"
	RouteAuthMe       = "/api/auth/me/"

	// Product Routes
	RouteProducts      = "/api/products/"
	RouteProductDetail = "/api/products/{id}/"
)
