package server_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/stockd/stockd/internal/config"
	productfake "github.com/stockd/stockd/products/repofake"
	"github.com/stockd/stockd/server"
	"github.com/stockd/stockd/token"
	"github.com/stockd/stockd/token/denylist"
	userfake "github.com/stockd/stockd/users/repofake"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("TOKEN_SECRET", "test-secret")

	cfg := config.New()
	repos := server.Repos{
		Users:    userfake.NewFakeUserRepo(),
		Products: productfake.NewFakeProductRepo(),
	}
	s, err := server.New(cfg, repos, token.NewManager(cfg, denylist.NewInMemory()))
	require.NoError(t, err)

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func newJarClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, c *http.Client, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func detailOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	return gjson.GetBytes(readBody(t, resp), "detail").String()
}

func registerUser(t *testing.T, ts *httptest.Server, email, password string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test"}`, email, password)
	resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/register/", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// loginClient registers (if needed) and logs in, returning a client whose
// jar carries the session cookies.
func loginClient(t *testing.T, ts *httptest.Server, email, password string) *http.Client {
	t.Helper()
	registerUser(t, ts, email, password)
	c := newJarClient(t)
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	resp := doJSON(t, c, http.MethodPost, ts.URL+"/api/auth/login/", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	return c
}

func TestRegisterHandler(t *testing.T) {
	ts := newTestServer(t)

	t.Run("creates user", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/register/",
			`{"email":"jane@example.com","password":"Secret123","first_name":"Jane","last_name":"Doe"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "User created successfully", detailOf(t, resp))
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/register/",
			`{"email":"jane@example.com","password":"Secret123"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "User with this email already exists", detailOf(t, resp))
	})

	t.Run("weak password", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/register/",
			`{"email":"weak@example.com","password":"short"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, detailOf(t, resp), "at least 8 characters")
	})

	t.Run("invalid email", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/register/",
			`{"email":"not-an-email","password":"Secret123"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Enter a valid email address", detailOf(t, resp))
	})

	t.Run("missing password", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/register/",
			`{"email":"jane2@example.com"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Email and password are required", detailOf(t, resp))
	})
}

func TestLoginHandler(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "jane@example.com", "Secret123")

	t.Run("sets HttpOnly token cookies", func(t *testing.T) {
		resp := doJSON(t, newJarClient(t), http.MethodPost, ts.URL+"/api/auth/login/",
			`{"email":"jane@example.com","password":"Secret123"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "Login successful", detailOf(t, resp))

		cookies := map[string]*http.Cookie{}
		for _, c := range resp.Cookies() {
			cookies[c.Name] = c
		}
		for _, name := range []string{"access_token", "refresh_token"} {
			c, ok := cookies[name]
			require.True(t, ok, "missing %s cookie", name)
			require.NotEmpty(t, c.Value)
			require.True(t, c.HttpOnly)
			require.Equal(t, "/", c.Path)
			require.Equal(t, http.SameSiteLaxMode, c.SameSite)
			require.Greater(t, c.MaxAge, 0)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/login/",
			`{"email":"jane@example.com","password":"Wrong1234"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Invalid credentials", detailOf(t, resp))
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/login/",
			`{"email":"ghost@example.com","password":"Secret123"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Invalid credentials", detailOf(t, resp))
	})
}

func TestMeHandler(t *testing.T) {
	ts := newTestServer(t)

	t.Run("returns the profile", func(t *testing.T) {
		c := loginClient(t, ts, "jane@example.com", "Secret123")
		resp := doJSON(t, c, http.MethodGet, ts.URL+"/api/auth/me/", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		require.Equal(t, "jane@example.com", gjson.GetBytes(body, "email").String())
		require.Equal(t, "Test", gjson.GetBytes(body, "first_name").String())
		require.False(t, gjson.GetBytes(body, "password").Exists())
	})

	t.Run("no cookie", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/api/auth/me/", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Authentication credentials were not provided", detailOf(t, resp))
	})

	t.Run("garbage cookie", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/me/", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "not-a-jwt"})
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Invalid access token", detailOf(t, resp))
	})
}

func TestRefreshHandler(t *testing.T) {
	ts := newTestServer(t)

	t.Run("no cookie", func(t *testing.T) {
		resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/auth/refresh/", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "No refresh token provided", detailOf(t, resp))
	})

	t.Run("garbage cookie", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/auth/refresh/", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "not-a-jwt"})
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Invalid refresh token", detailOf(t, resp))
	})

	t.Run("issues a new access cookie", func(t *testing.T) {
		c := loginClient(t, ts, "jane@example.com", "Secret123")
		resp := doJSON(t, c, http.MethodPost, ts.URL+"/api/auth/refresh/", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var access *http.Cookie
		for _, cookie := range resp.Cookies() {
			if cookie.Name == "access_token" {
				access = cookie
			}
		}
		require.NotNil(t, access)
		require.NotEmpty(t, access.Value)
		require.True(t, access.HttpOnly)
		require.Equal(t, "Token refreshed", detailOf(t, resp))
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		c := loginClient(t, ts, "john@example.com", "Secret123")

		var accessValue string
		for _, cookie := range c.Jar.Cookies(mustParseURL(t, ts.URL)) {
			if cookie.Name == "access_token" {
				accessValue = cookie.Value
			}
		}
		require.NotEmpty(t, accessValue)

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/auth/refresh/", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: accessValue})
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Invalid refresh token", detailOf(t, resp))
	})
}

func TestLogoutHandler(t *testing.T) {
	ts := newTestServer(t)
	c := loginClient(t, ts, "jane@example.com", "Secret123")

	var refreshValue string
	for _, cookie := range c.Jar.Cookies(mustParseURL(t, ts.URL)) {
		if cookie.Name == "refresh_token" {
			refreshValue = cookie.Value
		}
	}
	require.NotEmpty(t, refreshValue)

	resp := doJSON(t, c, http.MethodPost, ts.URL+"/api/auth/logout/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Logout successful", detailOf(t, resp))

	t.Run("cookies are deleted", func(t *testing.T) {
		for _, cookie := range resp.Cookies() {
			require.Less(t, cookie.MaxAge, 0, "cookie %s should be expired", cookie.Name)
			require.Empty(t, cookie.Value)
		}
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/auth/refresh/", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshValue})
		refreshResp, err := ts.Client().Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
		require.Equal(t, "Invalid refresh token", detailOf(t, refreshResp))
	})
}

// TestExpiredAccessTokenFlow exercises the full session lifecycle: an
// expired access cookie is rejected, the still-valid refresh cookie mints
// a new one, and the protected endpoint succeeds again.
func TestExpiredAccessTokenFlow(t *testing.T) {
	ts := newTestServer(t)

	// Log in "in the past" so the 5-minute access token is already
	// expired while the 7-day refresh token is still valid.
	token.NowTimeFunc = func() time.Time { return time.Now().Add(-10 * time.Minute) }
	c := loginClient(t, ts, "jane@example.com", "Secret123")
	token.NowTimeFunc = time.Now
	defer func() { token.NowTimeFunc = time.Now }()

	resp := doJSON(t, c, http.MethodGet, ts.URL+"/api/auth/me/", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid access token", detailOf(t, resp))

	resp = doJSON(t, c, http.MethodPost, ts.URL+"/api/auth/refresh/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, c, http.MethodGet, ts.URL+"/api/auth/me/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
