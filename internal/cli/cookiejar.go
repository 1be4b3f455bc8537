package cli

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileJar is an http.CookieJar persisted to a JSON file, giving the CLI
// the browser's durable cookie store. The server talks to exactly one
// host, so cookies are keyed by name without domain matching.
type FileJar struct {
	mu      sync.Mutex
	path    string
	cookies map[string]*storedCookie
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

var _ http.CookieJar = (*FileJar)(nil)

// NewFileJar creates a jar backed by the file at path, loading any
// previously persisted cookies.
func NewFileJar(path string) (*FileJar, error) {
	jar := &FileJar{
		path:    path,
		cookies: make(map[string]*storedCookie),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return jar, nil
		}
		return nil, err
	}

	var stored []*storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt jar is equivalent to an empty one
		return jar, nil
	}
	for _, c := range stored {
		jar.cookies[c.Name] = c
	}
	return jar, nil
}

func (j *FileJar) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(j.cookies, c.Name)
			continue
		}

		stored := &storedCookie{Name: c.Name, Value: c.Value}
		if c.MaxAge > 0 {
			stored.Expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		} else if !c.Expires.IsZero() {
			stored.Expires = c.Expires
		}
		j.cookies[c.Name] = stored
	}

	j.save()
}

func (j *FileJar) Cookies(_ *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	var out []*http.Cookie
	for name, c := range j.cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			delete(j.cookies, name)
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// save writes the jar to disk. Best effort: a failed write leaves the
// in-memory jar valid for the rest of the invocation.
func (j *FileJar) save() {
	stored := make([]*storedCookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		stored = append(stored, c)
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(j.path), os.ModePerm)
	_ = os.WriteFile(j.path, data, 0600)
}
