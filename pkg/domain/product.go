package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Product is a catalog entry. ID is assigned by the catalog on append and
// stays stable for the life of the process.
type Product struct {
	ID          string  `json:"id" yaml:"id,omitempty"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
}

// Validate checks the invariants every catalog product must hold.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Validation("name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return Validation("description is required")
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return Validation("price must be a number")
	}
	if p.Price < 0 {
		return Validation("price must be zero or more, got %s", FormatPrice(p.Price))
	}
	return nil
}

// PriceLabel renders the price the way menus and tickets show it, e.g. "$15".
func (p Product) PriceLabel() string {
	return FormatPrice(p.Price)
}

// FormatPrice renders a price with a dollar sign and no trailing zeros.
func FormatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', -1, 64)
}

// Selection records which product a user most recently picked.
type Selection struct {
	UserID     string    `json:"user_id"`
	Product    Product   `json:"product"`
	SelectedAt time.Time `json:"selected_at"`
}
