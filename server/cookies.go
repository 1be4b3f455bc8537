package server

import "net/http"

const (
	// accessTokenCookie holds the short-lived JWT read by the cookie-auth
	// middleware. Application clients never read it; it is HttpOnly.
	accessTokenCookie = "access_token"
	// refreshTokenCookie holds the long-lived JWT read only by the refresh
	// and logout endpoints.
	refreshTokenCookie = "refresh_token"
)

// setTokenCookie sets an HttpOnly SameSite=Lax cookie. SameSite=Lax allows
// top-level navigations while blocking cross-site POSTs, which combined
// with the origin allow-list covers CSRF for this API.
func (s *Server) setTokenCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	secure := s.config.GetSecureCookies() || getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clearTokenCookie deletes a cookie by setting MaxAge < 0.
func (s *Server) clearTokenCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies() || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
