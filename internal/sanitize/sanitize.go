// Package sanitize converts untrusted, partially-typed records (HTTP bodies,
// object-store payloads) into complete domain entities. Sanitizing never
// fails: missing or invalid fields are replaced with defaults.
package sanitize

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/securevista/securevista/internal/domain"
)

// Product builds a complete product from a raw decoded JSON object.
// Non-array specifications/features are coerced to empty sequences instead of
// propagating the type mismatch.
func Product(raw map[string]interface{}) domain.Product {
	p := domain.Product{
		ID:          cast.ToString(raw["id"]),
		Name:        cast.ToString(raw["name"]),
		Description: cast.ToString(raw["description"]),
		Price:       cast.ToFloat64(raw["price"]),
		Discount:    cast.ToInt(raw["discount"]),
		Category:    cast.ToString(raw["category"]),
		Rating:      cast.ToFloat64(raw["rating"]),
		Reviews:     cast.ToInt(raw["reviews"]),
		Featured:    cast.ToBool(raw["featured"]),
		IsNew:       cast.ToBool(raw["isNew"]),
	}

	if img, ok := raw["image"].(string); ok {
		p.Image = img
	}

	// inStock defaults to true unless explicitly false
	p.InStock = true
	if v, ok := raw["inStock"]; ok {
		p.InStock = cast.ToBool(v)
	}

	if specs, ok := raw["specifications"].([]interface{}); ok {
		for _, item := range specs {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			p.Specifications = append(p.Specifications, domain.Specification{
				Name:  cast.ToString(entry["name"]),
				Value: cast.ToString(entry["value"]),
			})
		}
	}
	if feats, ok := raw["features"].([]interface{}); ok {
		for _, item := range feats {
			p.Features = append(p.Features, cast.ToString(item))
		}
	}

	return NormalizeProduct(p)
}

// NormalizeProduct fills defaults on an already-typed product and recomputes
// the derived discounted price. Idempotent.
func NormalizeProduct(p domain.Product) domain.Product {
	if p.ID == "" {
		p.ID = domain.NewProductID()
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = "Product"
	}
	if strings.TrimSpace(p.Description) == "" {
		p.Description = "No description available"
	}
	if strings.TrimSpace(p.Category) == "" {
		p.Category = "General"
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Discount < 0 {
		p.Discount = 0
	}
	if p.Discount > 100 {
		p.Discount = 100
	}

	// Session-scoped object URLs are only valid inside the browser session
	// that created them; persisting one would break every later page load.
	if p.Image == "" || strings.HasPrefix(p.Image, "blob:") {
		p.Image = domain.PlaceholderImage
	}

	if p.Rating == 0 {
		p.Rating = 4.0
	}
	if p.Rating < 1.0 {
		p.Rating = 1.0
	}
	if p.Rating > 5.0 {
		p.Rating = 5.0
	}
	if p.Reviews < 0 {
		p.Reviews = 0
	}
	if p.Specifications == nil {
		p.Specifications = []domain.Specification{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	// discountedPrice is derived, never trusted from input
	if p.Discount > 0 {
		p.DiscountedPrice = math.Round(p.Price - p.Price*float64(p.Discount)/100)
	} else {
		p.DiscountedPrice = 0
	}

	return p
}

// Message builds a complete message from a raw decoded JSON object.
func Message(raw map[string]interface{}) domain.Message {
	m := domain.Message{
		ID:        cast.ToString(raw["id"]),
		Name:      cast.ToString(raw["name"]),
		Email:     cast.ToString(raw["email"]),
		Phone:     cast.ToString(raw["phone"]),
		Subject:   cast.ToString(raw["subject"]),
		Message:   cast.ToString(raw["message"]),
		CreatedAt: cast.ToString(raw["createdAt"]),
		Read:      cast.ToBool(raw["read"]),
		Replied:   cast.ToBool(raw["replied"]),
	}
	return NormalizeMessage(m)
}

// NormalizeMessage fills defaults on an already-typed message. Idempotent.
func NormalizeMessage(m domain.Message) domain.Message {
	if m.ID == "" {
		m.ID = domain.NewMessageID()
	}
	if strings.TrimSpace(m.Subject) == "" {
		m.Subject = domain.DefaultSubject
	}
	if m.CreatedAt == "" {
		m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return m
}
