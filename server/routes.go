package server

func (s *Server) initRoutes() {
	// Auth endpoints. "{$}" pins each pattern to the exact path instead of
	// the subtree the trailing slash would otherwise match.
	s.RegisterRouteFunc("POST "+RouteAuthRegister+"{$}", ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogin+"{$}", ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh+"{$}", ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogout+"{$}", ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireCookieAuth())...))
	s.RegisterRouteFunc("GET "+RouteAuthMe+"{$}", ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireCookieAuth())...))

	// Product endpoints (all require a valid access cookie)
	s.RegisterRouteFunc("GET "+RouteProducts+"{$}", ChainMiddleware(s.ProductListHandler(), s.APIMiddleware(s.RequireCookieAuth())...))
	s.RegisterRouteFunc("POST "+RouteProducts+"{$}", ChainMiddleware(s.ProductCreateHandler(), s.APIMiddleware(s.RequireCookieAuth())...))
	s.RegisterRouteFunc("GET "+RouteProductDetail+"{$}", ChainMiddleware(s.ProductGetHandler(), s.APIMiddleware(s.RequireCookieAuth())...))
	s.RegisterRouteFunc("PUT "+RouteProductDetail+"{$}", ChainMiddleware(s.ProductUpdateHandler(), s.APIMiddleware(s.RequireCookieAuth())...))
	s.RegisterRouteFunc("DELETE "+RouteProductDetail+"{$}", ChainMiddleware(s.ProductDeleteHandler(), s.APIMiddleware(s.RequireCookieAuth())...))

	// Browsers send CORS preflights without cookies; answer them for the
	// whole API subtree.
	s.RegisterRouteFunc("OPTIONS /api/", ChainMiddleware(s.PreflightHandler(), s.CorsMiddleware))
}
