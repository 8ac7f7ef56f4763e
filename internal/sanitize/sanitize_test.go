package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securevista/securevista/internal/domain"
)

func TestProductDefaults(t *testing.T) {
	p := Product(map[string]interface{}{})

	assert.True(t, strings.HasPrefix(p.ID, "product-"))
	assert.Equal(t, "Product", p.Name)
	assert.Equal(t, "No description available", p.Description)
	assert.Equal(t, "General", p.Category)
	assert.Equal(t, domain.PlaceholderImage, p.Image)
	assert.Equal(t, 4.0, p.Rating)
	assert.True(t, p.InStock)
	assert.NotNil(t, p.Specifications)
	assert.NotNil(t, p.Features)
	assert.Empty(t, p.Specifications)
	assert.Empty(t, p.Features)
}

func TestProductCoercions(t *testing.T) {
	p := Product(map[string]interface{}{
		"id":       "product-1",
		"name":     "Dome Camera",
		"price":    "1500",
		"discount": "20",
		"rating":   "4.5",
		"reviews":  "12",
		"featured": "true",
		"inStock":  false,
	})

	assert.Equal(t, 1500.0, p.Price)
	assert.Equal(t, 20, p.Discount)
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, 12, p.Reviews)
	assert.True(t, p.Featured)
	assert.False(t, p.InStock)
}

func TestProductNonArrayCollectionsCoercedToEmpty(t *testing.T) {
	p := Product(map[string]interface{}{
		"id":             "product-1",
		"specifications": "not an array",
		"features":       map[string]interface{}{"a": 1},
	})

	assert.Equal(t, []domain.Specification{}, p.Specifications)
	assert.Equal(t, []string{}, p.Features)
}

func TestProductClamping(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want func(t *testing.T, p domain.Product)
	}{
		{
			name: "negative price",
			raw:  map[string]interface{}{"price": -50},
			want: func(t *testing.T, p domain.Product) { assert.Equal(t, 0.0, p.Price) },
		},
		{
			name: "discount above range",
			raw:  map[string]interface{}{"discount": 150},
			want: func(t *testing.T, p domain.Product) { assert.Equal(t, 100, p.Discount) },
		},
		{
			name: "discount below range",
			raw:  map[string]interface{}{"discount": -10},
			want: func(t *testing.T, p domain.Product) { assert.Equal(t, 0, p.Discount) },
		},
		{
			name: "rating above range",
			raw:  map[string]interface{}{"rating": 9.5},
			want: func(t *testing.T, p domain.Product) { assert.Equal(t, 5.0, p.Rating) },
		},
		{
			name: "rating below range",
			raw:  map[string]interface{}{"rating": 0.2},
			want: func(t *testing.T, p domain.Product) { assert.Equal(t, 1.0, p.Rating) },
		},
		{
			name: "negative reviews",
			raw:  map[string]interface{}{"reviews": -3},
			want: func(t *testing.T, p domain.Product) { assert.Equal(t, 0, p.Reviews) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.want(t, Product(tc.raw))
		})
	}
}

func TestProductDiscountedPriceDerived(t *testing.T) {
	p := Product(map[string]interface{}{
		"price":           1000,
		"discount":        25,
		"discountedPrice": 1, // must be ignored
	})
	assert.Equal(t, 750.0, p.DiscountedPrice)

	p = Product(map[string]interface{}{
		"price":           1000,
		"discountedPrice": 123,
	})
	assert.Equal(t, 0.0, p.DiscountedPrice)
}

func TestProductSessionImageURLRejected(t *testing.T) {
	p := Product(map[string]interface{}{
		"image": "blob:https://example.com/9c1f3a",
	})
	assert.Equal(t, domain.PlaceholderImage, p.Image)

	p = Product(map[string]interface{}{
		"image": "/images/camera.jpg",
	})
	assert.Equal(t, "/images/camera.jpg", p.Image)
}

func TestNormalizeProductIdempotent(t *testing.T) {
	p := Product(map[string]interface{}{
		"name":     "Bullet Camera",
		"price":    2400,
		"discount": 10,
		"features": []interface{}{"Night vision"},
	})
	again := NormalizeProduct(p)
	require.Equal(t, p, again)
}

func TestMessageDefaults(t *testing.T) {
	m := Message(map[string]interface{}{
		"name":    "Asha",
		"email":   "asha@example.com",
		"message": "Need a quote",
	})

	assert.True(t, strings.HasPrefix(m.ID, "msg-"))
	assert.Equal(t, domain.DefaultSubject, m.Subject)
	assert.NotEmpty(t, m.CreatedAt)
	assert.False(t, m.Read)
	assert.False(t, m.Replied)
}

func TestNormalizeMessageIdempotent(t *testing.T) {
	m := Message(map[string]interface{}{
		"name":    "Asha",
		"email":   "asha@example.com",
		"message": "Need a quote",
	})
	require.Equal(t, m, NormalizeMessage(m))
}
