package domain

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/random"
)

// PlaceholderImage is substituted for missing or session-scoped image URLs.
const PlaceholderImage = "/placeholder.svg?height=300&width=300"

// Specification is one name/value row of a product spec sheet. Order matters.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is a catalog entry as stored in a collection snapshot.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	DiscountedPrice float64         `json:"discountedPrice,omitempty"`
	Discount        int             `json:"discount"`
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	Features        []string        `json:"features"`
	Specifications  []Specification `json:"specifications"`
	Featured        bool            `json:"featured,omitempty"`
	IsNew           bool            `json:"isNew"`
	InStock         bool            `json:"inStock"`
	Rating          float64         `json:"rating"`
	Reviews         int             `json:"reviews"`
}

// NewProductID returns an id of the form product-<unix-millis>-<random>.
func NewProductID() string {
	return fmt.Sprintf("product-%d-%s", time.Now().UnixMilli(),
		random.String(7, random.Lowercase+random.Numeric))
}
