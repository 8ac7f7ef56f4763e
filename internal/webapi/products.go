package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/securevista/securevista/internal/blobstore"
	"github.com/securevista/securevista/internal/domain"
	"github.com/securevista/securevista/internal/sanitize"
)

// savePayload accepts either a whole replacement collection or a single
// product to append, mirroring the two shapes the admin console sends.
type savePayload struct {
	Products []map[string]interface{} `json:"products"`
	Product  map[string]interface{}   `json:"product"`
}

func (s *WebServer) listProducts(c echo.Context) error {
	return ok(c, s.app.Products().ListAll(c.Request().Context()))
}

func (s *WebServer) listFeaturedProducts(c echo.Context) error {
	return ok(c, s.app.Products().ListFeatured(c.Request().Context()))
}

func (s *WebServer) getProduct(c echo.Context) error {
	p, err := s.app.Products().GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Product not found")
		}
		zap.S().Errorf("product lookup failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch product")
	}
	return ok(c, p)
}

func (s *WebServer) saveProducts(c echo.Context) error {
	var payload savePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()

	switch {
	case payload.Products != nil:
		products := make([]domain.Product, 0, len(payload.Products))
		for _, raw := range payload.Products {
			products = append(products, sanitize.Product(raw))
		}
		info, err := s.app.Products().ReplaceAll(ctx, products)
		if err != nil {
			zap.S().Errorf("product snapshot write failed: %v", err)
			return fail(c, http.StatusInternalServerError, "Failed to save products")
		}
		return ok(c, echo.Map{"key": info.Key, "url": info.URL})

	case payload.Product != nil:
		for _, field := range []string{"name", "description", "price", "category"} {
			if _, present := payload.Product[field]; !present {
				return fail(c, http.StatusBadRequest, "Missing required field: "+field)
			}
		}
		product, _, err := s.app.Products().UpsertOne(ctx, sanitize.Product(payload.Product))
		if err != nil {
			zap.S().Errorf("product append failed: %v", err)
			return fail(c, http.StatusInternalServerError, "Failed to save product")
		}
		return ok(c, product)

	default:
		return fail(c, http.StatusBadRequest, "Expected products array or product object")
	}
}

func (s *WebServer) updateProduct(c echo.Context) error {
	var payload savePayload
	if err := c.Bind(&payload); err != nil || payload.Product == nil {
		return fail(c, http.StatusBadRequest, "Expected product object")
	}

	product := sanitize.Product(payload.Product)
	if product.ID == "" {
		return fail(c, http.StatusBadRequest, "Product id is required")
	}

	ctx := c.Request().Context()
	if _, err := s.app.Products().GetByID(ctx, product.ID); err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Product not found")
		}
		zap.S().Errorf("product lookup failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to update product")
	}

	updated, _, err := s.app.Products().UpsertOne(ctx, product)
	if err != nil {
		zap.S().Errorf("product update failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to update product")
	}
	return ok(c, updated)
}
