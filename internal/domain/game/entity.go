package game

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a game could not be located.
	ErrNotFound = errors.New("game not found")
	// ErrNameExists signals a duplicate game name.
	ErrNameExists = errors.New("game with this name already exists")
	// ErrNegativePrice rejects prices below zero.
	ErrNegativePrice = errors.New("price cannot be negative")
	// ErrInvalidDiscount rejects discounts outside 0-100.
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

// Game captures a catalog entry. Price is the effective selling price;
// OriginalPrice is the base price the discount is computed from.
type Game struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"`
	OnSale        bool      `json:"onSale"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// New validates and constructs a catalog entry with no discount applied.
func New(name, description string, price float64) (*Game, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	return &Game{
		Name:          name,
		Description:   description,
		Price:         price,
		OriginalPrice: price,
	}, nil
}

// UpdateDetails changes name and description, ignoring empty name.
func (g *Game) UpdateDetails(name, description *string) {
	if name != nil && *name != "" {
		g.Name = *name
	}
	if description != nil {
		g.Description = *description
	}
}

// UpdatePrice sets a new base price and recomputes the effective price
// when a discount is active.
func (g *Game) UpdatePrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	g.OriginalPrice = price
	if g.Discount > 0 {
		g.Price = g.discountedPrice(g.Discount)
	} else {
		g.Price = price
	}
	return nil
}

// ApplyDiscount sets the discount percentage and recomputes the effective
// price from the original price. A zero discount leaves the game off sale.
func (g *Game) ApplyDiscount(percentage int) error {
	if percentage < 0 || percentage > 100 {
		return ErrInvalidDiscount
	}
	g.Price = g.discountedPrice(percentage)
	g.Discount = percentage
	g.OnSale = percentage > 0
	return nil
}

// RemoveDiscount restores the original price and takes the game off sale.
func (g *Game) RemoveDiscount() {
	g.Discount = 0
	g.Price = g.OriginalPrice
	g.OnSale = false
}

// SetOnSale toggles the sale flag without touching pricing.
func (g *Game) SetOnSale(onSale bool) {
	g.OnSale = onSale
}

func (g *Game) discountedPrice(percentage int) float64 {
	if percentage <= 0 {
		return g.OriginalPrice
	}
	return g.OriginalPrice - g.OriginalPrice*float64(percentage)/100
}
