package client

import (
	"context"

	apperrors "github.com/stockd/stockd/internal/errors"
)

// Hydrate reconciles the persisted "was authenticated" flag with the
// server at startup.
//
// Without a persisted flag there is nothing to verify: the session stays
// cleared and no network call is made. With the flag set, the identity
// endpoint is called with credentials attached; a 401 goes through the
// same one-shot refresh-and-retry as any protected request.
//
// Any failure leaves the session cleared — ambiguous states are treated
// as unauthenticated. A definitive server answer (including 401 after a
// failed refresh) returns nil: being logged out is a valid hydration
// outcome, not an error. Transport faults are returned so the caller can
// distinguish "not logged in" from "could not reach the server".
func (c *Client) Hydrate(ctx context.Context) error {
	if c.config == nil || !c.config.GetAuthenticated() {
		c.session.Clear()
		return nil
	}

	if _, err := c.Me(ctx); err != nil {
		c.session.Clear()
		var httpErr *HTTPError
		if apperrors.As(err, &httpErr) {
			return nil
		}
		return err
	}

	// Me populated the session store with the verified profile.
	return nil
}
