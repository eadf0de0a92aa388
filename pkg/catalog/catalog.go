package catalog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/google/uuid"
)

// Catalog is an append-only, ordered product list. Safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[string]int
}

// New creates a catalog holding the given products in order.
// Products without an ID get one assigned.
func New(products ...domain.Product) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int)}
	for _, p := range products {
		if _, err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Defaults returns the products the shop opens with when no seed file is given.
func Defaults() []domain.Product {
	return []domain.Product{
		{Name: "YouTube Premium Yearly", Description: "Full Time Warranty • 1 Year Access", Price: 23},
		{Name: "Netflix Yearly", Description: "2 Months Warranty • 1 Year Access", Price: 15},
	}
}

// Add validates p, assigns it a stable ID when missing and appends it.
func (c *Catalog) Add(p domain.Product) (domain.Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	// Numeric values resolve by position, so an ID may never look like one.
	if _, err := strconv.Atoi(p.ID); err == nil {
		return domain.Product{}, domain.Validation("product id %q must not be a number", p.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := c.byID[p.ID]; exists {
		return domain.Product{}, domain.Validation("product id %q already exists", p.ID)
	}

	c.byID[p.ID] = len(c.products)
	c.products = append(c.products, p)
	return p, nil
}

// Get looks a product up by ID.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// At returns the product at a position.
func (c *Catalog) At(index int) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index < 0 || index >= len(c.products) {
		return domain.Product{}, false
	}
	return c.products[index], true
}

// Resolve turns a menu value into a product. Values are product IDs; plain
// decimal indices from older menus are still understood.
func (c *Catalog) Resolve(value string) (domain.Product, error) {
	value = strings.TrimSpace(value)
	if p, ok := c.Get(value); ok {
		return p, nil
	}
	if i, err := strconv.Atoi(value); err == nil {
		if p, ok := c.At(i); ok {
			return p, nil
		}
	}
	return domain.Product{}, domain.Index(value)
}

// List returns a copy of the products in order.
func (c *Catalog) List() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
