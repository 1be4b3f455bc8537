package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockd/stockd/client"
	"github.com/stockd/stockd/users"
)

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"email":"jane@example.com","password":"Secret123"}` {
			writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		setFreshCookie(w)
		writeDetail(w, http.StatusOK, "Login successful")
	})
	mux.HandleFunc("GET /api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		if !hasFreshCookie(r) {
			writeDetail(w, http.StatusUnauthorized, "Invalid access token")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","email":"jane@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := client.New(staticConfig{url: srv.URL})
	require.NoError(t, err)

	t.Run("success populates session", func(t *testing.T) {
		profile, err := c.Login(context.Background(), "jane@example.com", "Secret123")
		require.NoError(t, err)
		require.Equal(t, "u1", profile.ID)
		require.True(t, c.Session().IsAuthenticated())
	})

	t.Run("bad credentials surface the server detail", func(t *testing.T) {
		_, err := c.Login(context.Background(), "jane@example.com", "wrong")
		require.Error(t, err)

		var httpErr *client.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		require.Equal(t, "Invalid credentials", httpErr.Detail)
	})
}

func TestLogout_ClearsSessionEvenWhenServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := client.New(staticConfig{url: srv.URL})
	require.NoError(t, err)
	c.Session().Set(users.Profile{ID: "u1", Email: "jane@example.com"})

	require.Error(t, c.Logout(context.Background()))
	require.False(t, c.Session().IsAuthenticated())
}

func TestUpdateProductRaw(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/products/p42/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"p42","name":"Widget","price":"19.99","quantity":5}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := client.New(staticConfig{url: srv.URL})
	require.NoError(t, err)

	t.Run("id taken from payload when omitted", func(t *testing.T) {
		p, err := c.UpdateProductRaw(context.Background(), "", []byte(`{"id":"p42","name":"Widget"}`))
		require.NoError(t, err)
		require.Equal(t, "p42", p.ID)
		require.Equal(t, "Widget", p.Name)
	})

	t.Run("missing id rejected before any request", func(t *testing.T) {
		_, err := c.UpdateProductRaw(context.Background(), "", []byte(`{"name":"Widget"}`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "product id is required")
	})
}

func TestErrorDetailFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	c, err := client.New(staticConfig{url: srv.URL})
	require.NoError(t, err)

	_, err = c.ListProducts(context.Background())
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	require.Equal(t, http.StatusText(http.StatusBadGateway), httpErr.Detail)
}
