// Package repository offers collection-level operations on Products and
// Messages on top of the blob store and sanitizer. Reads prefer silent
// degradation (remote store, then local cache, then bundled defaults) so the
// storefront always has something to render; writes report explicit errors.
package repository

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrValidationFailed reports a missing required input field. It is the only
// error raised before any store I/O happens.
var ErrValidationFailed = errors.New("repository: validation failed")

// Event topics published on the application bus.
const (
	EventProductsReplaced = "products.replaced"
	EventMessageCreated   = "messages.created"
	EventMessageDeleted   = "messages.deleted"
)
