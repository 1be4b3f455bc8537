// Package client is an HTTP client for the stockd API. Credentials travel
// only in HttpOnly cookies managed by the cookie jar; the client never
// reads token material, only HTTP status codes. When a protected request
// comes back 401 the client performs exactly one refresh against the
// token-refresh endpoint and retries the original request exactly once.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/stockd/stockd/client/session"
)

// Configurator defines the interface for providing server configuration
// and the persisted authentication flag used by Hydrate.
type Configurator interface {
	GetServerURL() string
	GetAuthenticated() bool
}

// HTTPError represents a non-2xx response from the server. Detail carries
// the server's human-readable message verbatim.
type HTTPError struct {
	StatusCode int    // HTTP status code of the error
	Detail     string // Detail message from the server, or the status text
}

// Error implements the error interface for HTTPError.
func (e *HTTPError) Error() string {
	return e.Detail
}

// RequestOptions contains options for making HTTP requests.
// All fields are optional except Method and Path.
type RequestOptions struct {
	Method      string            // HTTP method (GET, POST, PUT, DELETE)
	Path        string            // API endpoint path
	QueryParams map[string]string // Optional query parameters
	Body        []byte            // Optional request body
	Headers     map[string]string // Optional extra headers
}

// Response is the outcome of a request. Non-2xx responses are returned
// as-is by Do; converting them to errors is the typed API layer's job.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues requests against the stockd API with automatic
// refresh-and-retry on expired sessions.
type Client struct {
	config     Configurator
	baseURL    *url.URL
	httpClient *http.Client
	session    *session.Store
	refresh    singleflight.Group
	onExpired  func()
}

// ClientOptions contains options for configuring the client.
type ClientOptions struct {
	DisableCertValidation bool           // If true, skips SSL certificate validation
	Jar                   http.CookieJar // Cookie jar; an in-memory jar is created when nil
	OnSessionExpired      func()         // Invoked once when the session terminates irrecoverably
}

// New creates a new client using the provided configuration.
func New(config Configurator, opts ...ClientOptions) (*Client, error) {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}

	baseURL, err := url.Parse(config.GetServerURL())
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	jar := clientOpts.Jar
	if jar == nil {
		jar, err = cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
	}

	httpClient := &http.Client{Jar: jar}
	if clientOpts.DisableCertValidation {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &Client{
		config:     config,
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    session.NewStore(),
		onExpired:  clientOpts.OnSessionExpired,
	}, nil
}

// Session returns the client's session store.
func (c *Client) Session() *session.Store {
	return c.session
}

// requestState drives the refresh-and-retry sequence. Making the states
// explicit keeps the at-most-one-refresh, at-most-one-retry guarantee
// structural rather than buried in nested conditionals.
type requestState int

const (
	stateRequesting requestState = iota
	stateRefreshing
	stateRetrying
	stateDone
)

// Do issues the request with credentials attached via the cookie jar.
//
// A 401 from anything other than a credential-issuing endpoint triggers
// one refresh; if the refresh succeeds the original request is re-issued
// once and that second response is final regardless of its status. If the
// refresh fails the session is cleared and the refresh failure is what
// the caller gets back: the failing refresh response, or the transport
// fault, never silently swallowed.
//
// Requests to the login, refresh, and logout endpoints are returned
// unmodified even on 401, so a refresh can never trigger another refresh.
func (c *Client) Do(ctx context.Context, opts RequestOptions) (*Response, error) {
	var resp *Response
	var err error

	for state := stateRequesting; state != stateDone; {
		switch state {
		case stateRequesting:
			resp, err = c.send(ctx, opts)
			if err == nil && resp.StatusCode == http.StatusUnauthorized && !isCredentialEndpoint(opts.Path) {
				state = stateRefreshing
			} else {
				state = stateDone
			}

		case stateRefreshing:
			var refreshResp *Response
			refreshResp, err = c.refreshSession(ctx)
			if err != nil {
				resp = nil
				state = stateDone
			} else if !refreshResp.Success() {
				resp = refreshResp
				state = stateDone
			} else {
				state = stateRetrying
			}

		case stateRetrying:
			resp, err = c.send(ctx, opts)
			state = stateDone
		}
	}

	return resp, err
}

// refreshSession performs one refresh call. Concurrent callers that all
// hit a stale session coalesce behind a single in-flight refresh and
// share its outcome instead of issuing N parallel refresh calls.
//
// On any failure — non-2xx status or transport fault — the session is
// terminated: cleared, with the expiry callback fired.
func (c *Client) refreshSession(ctx context.Context) (*Response, error) {
	v, err, _ := c.refresh.Do("refresh", func() (interface{}, error) {
		resp, err := c.send(ctx, RequestOptions{
			Method: http.MethodPost,
			Path:   routeAuthRefresh,
		})
		if err != nil {
			c.terminateSession()
			return nil, err
		}
		if !resp.Success() {
			c.terminateSession()
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}

func (c *Client) terminateSession() {
	c.session.Clear()
	if c.onExpired != nil {
		c.onExpired()
	}
}

// send issues a single HTTP request. The cookie jar attaches whatever
// session cookies the server previously set.
func (c *Client) send(ctx context.Context, opts RequestOptions) (*Response, error) {
	u := c.baseURL.JoinPath(opts.Path)

	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bytes.NewReader(opts.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if len(opts.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

// toError converts a non-2xx response into an *HTTPError carrying the
// server's detail message verbatim.
func toError(resp *Response) error {
	if resp.Success() {
		return nil
	}
	detail := gjson.GetBytes(resp.Body, "detail").String()
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Detail:     detail,
	}
}
