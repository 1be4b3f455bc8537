package products

import (
	"fmt"
	"regexp"
	"time"
)

// Product is an inventory item created by a user. All authenticated users
// can view every product; only the creator can update or delete one.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        string    `json:"price"` // Decimal carried as a string, e.g. "19.99"
	Quantity     int       `json:"quantity"`
	CreatorID    string    `json:"creator_id"`
	CreatorEmail string    `json:"creator_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// priceRe accepts up to 10 digits with an optional 2-decimal fraction,
// matching the NUMERIC(10,2) price column.
var priceRe = regexp.MustCompile(`^\d{1,10}(\.\d{1,2})?$`)

// ValidatePrice checks that price is a non-negative decimal string with at
// most two fractional digits.
func ValidatePrice(price string) error {
	if !priceRe.MatchString(price) {
		return fmt.Errorf("price must be a decimal number with up to 2 decimal places")
	}
	return nil
}
