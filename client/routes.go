package client

import "strings"

// API endpoint paths. These mirror the server's route table; the client
// keeps its own copy because it is an independent consumer of the wire
// contract, not of the server package.
const (
	routeAuthRegister = "/api/auth/register/"
	routeAuthLogin    = "/api/auth/login/"
	routeAuthRefresh  = "/api/auth/refresh/"
	routeAuthLogout   = "/api/auth/logout/"
	routeAuthMe       = "/api/auth/me/"
	routeProducts     = "/api/products/"
)

// isCredentialEndpoint reports whether path targets a credential-issuing
// endpoint (login, refresh, or logout). Such requests are never retried:
// a 401 from refresh means the session is gone, and retrying it would
// loop forever.
func isCredentialEndpoint(path string) bool {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path = path + "/"
	}
	switch path {
	case routeAuthLogin, routeAuthRefresh, routeAuthLogout:
		return true
	}
	return false
}
