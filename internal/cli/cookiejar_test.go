package cli

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileJar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u, err := url.Parse("http://localhost:8080")
	require.NoError(t, err)

	t.Run("cookies survive a restart", func(t *testing.T) {
		jar, err := NewFileJar(path)
		require.NoError(t, err)

		jar.SetCookies(u, []*http.Cookie{
			{Name: "access_token", Value: "a1", MaxAge: 300},
			{Name: "refresh_token", Value: "r1", MaxAge: 604800},
		})

		reloaded, err := NewFileJar(path)
		require.NoError(t, err)

		got := map[string]string{}
		for _, c := range reloaded.Cookies(u) {
			got[c.Name] = c.Value
		}
		require.Equal(t, map[string]string{
			"access_token":  "a1",
			"refresh_token": "r1",
		}, got)
	})

	t.Run("deletion cookie removes the entry", func(t *testing.T) {
		jar, err := NewFileJar(path)
		require.NoError(t, err)

		jar.SetCookies(u, []*http.Cookie{
			{Name: "access_token", Value: "", MaxAge: -1},
		})

		for _, c := range jar.Cookies(u) {
			require.NotEqual(t, "access_token", c.Name)
		}

		reloaded, err := NewFileJar(path)
		require.NoError(t, err)
		for _, c := range reloaded.Cookies(u) {
			require.NotEqual(t, "access_token", c.Name)
		}
	})

	t.Run("expired cookies are dropped", func(t *testing.T) {
		jar, err := NewFileJar(path)
		require.NoError(t, err)

		jar.SetCookies(u, []*http.Cookie{
			{Name: "stale", Value: "x", Expires: time.Now().Add(-time.Hour)},
		})
		for _, c := range jar.Cookies(u) {
			require.NotEqual(t, "stale", c.Name)
		}
	})

	t.Run("corrupt file is treated as empty", func(t *testing.T) {
		corrupt := filepath.Join(t.TempDir(), "cookies.json")
		require.NoError(t, os.WriteFile(corrupt, []byte("not json"), 0600))

		jar, err := NewFileJar(corrupt)
		require.NoError(t, err)
		require.Empty(t, jar.Cookies(u))
	})
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := &Config{Version: "1", ServerURL: "http://localhost:9999", Authenticated: true}
	require.NoError(t, cfg.WriteConfig(path))

	require.NoError(t, LoadConfig(path))
	loaded := GetConfig()
	require.Equal(t, "http://localhost:9999", loaded.GetServerURL())
	require.True(t, loaded.GetAuthenticated())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(filepath.Join(t.TempDir(), "config.yaml")))
	cfg := GetConfig()
	require.Equal(t, "http://localhost:8080", cfg.GetServerURL())
	require.False(t, cfg.GetAuthenticated())
}
