package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/stockd/stockd/products"
	"github.com/stockd/stockd/users"
)

// RegisterParams are the fields accepted by the registration endpoint.
type RegisterParams struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ProductParams are the fields accepted when creating a product.
type ProductParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

// ProductUpdate carries a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode register request: %w", err)
	}

	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   routeAuthRegister,
		Body:   body,
	})
	if err != nil {
		return err
	}
	return toError(resp)
}

// Login authenticates with email and password. The server responds by
// setting the session cookies; on success the profile is fetched and the
// session store populated.
func (c *Client) Login(ctx context.Context, email, password string) (*users.Profile, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   routeAuthLogin,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	if err := toError(resp); err != nil {
		return nil, err
	}

	return c.Me(ctx)
}

// Logout invalidates the server-side credentials and clears the local
// session regardless of the server's answer.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   routeAuthLogout,
	})
	c.session.Clear()
	if err != nil {
		return err
	}
	return toError(resp)
}

// Me fetches the authenticated user's profile and records it in the
// session store.
func (c *Client) Me(ctx context.Context) (*users.Profile, error) {
	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   routeAuthMe,
	})
	if err != nil {
		return nil, err
	}
	if err := toError(resp); err != nil {
		return nil, err
	}

	var profile users.Profile
	if err := json.Unmarshal(resp.Body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}

	c.session.Set(profile)
	return &profile, nil
}

// ListProducts returns all products, newest first.
func (c *Client) ListProducts(ctx context.Context) ([]*products.Product, error) {
	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   routeProducts,
	})
	if err != nil {
		return nil, err
	}
	if err := toError(resp); err != nil {
		return nil, err
	}

	var list []*products.Product
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse product list: %w", err)
	}
	return list, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*products.Product, error) {
	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodGet,
		Path:   routeProducts + id + "/",
	})
	if err != nil {
		return nil, err
	}
	return parseProduct(resp)
}

// CreateProduct creates a product owned by the authenticated user.
func (c *Client) CreateProduct(ctx context.Context, params ProductParams) (*products.Product, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   routeProducts,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return parseProduct(resp)
}

// UpdateProduct applies a partial update to the product with the given ID.
func (c *Client) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*products.Product, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product update: %w", err)
	}
	return c.UpdateProductRaw(ctx, id, body)
}

// UpdateProductRaw sends a raw JSON update payload. When id is empty it is
// taken from the payload's "id" field, so callers can round-trip a
// previously fetched product document.
func (c *Client) UpdateProductRaw(ctx context.Context, id string, data []byte) (*products.Product, error) {
	if id == "" {
		id = gjson.GetBytes(data, "id").String()
	}
	if id == "" {
		return nil, fmt.Errorf("product id is required for update")
	}

	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodPut,
		Path:   routeProducts + id + "/",
		Body:   data,
	})
	if err != nil {
		return nil, err
	}
	return parseProduct(resp)
}

// DeleteProduct deletes the product with the given ID.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	resp, err := c.Do(ctx, RequestOptions{
		Method: http.MethodDelete,
		Path:   routeProducts + id + "/",
	})
	if err != nil {
		return err
	}
	return toError(resp)
}

func parseProduct(resp *Response) (*products.Product, error) {
	if err := toError(resp); err != nil {
		return nil, err
	}
	var p products.Product
	if err := json.Unmarshal(resp.Body, &p); err != nil {
		return nil, fmt.Errorf("failed to parse product response: %w", err)
	}
	return &p, nil
}
