package commerce

import (
	"context"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 250
)

// Client is the storefront view on the commerce backend: catalog reads and the
// remote checkout.
//
//go:generate mockgen -source=api.go -package commerce -destination client_mock.go Client
type Client interface {
	ListProducts(c context.Context, first int) ([]Product, error)
	GetProductByID(c context.Context, id string) (Product, error)
	GetProductByHandle(c context.Context, handle string) (Product, error)
	ListCollections(c context.Context, first int) ([]Collection, error)
	GetCollectionByHandle(c context.Context, handle string, firstProducts int) (Collection, error)

	CreateCheckout(c context.Context, lines []LineItem) (Checkout, error)
	ReplaceCheckoutLines(c context.Context, checkoutID string, lines []LineItem) (Checkout, error)
	AddCheckoutLines(c context.Context, checkoutID string, lines []LineItem) (Checkout, error)
	UpdateCheckoutLines(c context.Context, checkoutID string, lines []LineUpdate) (Checkout, error)
	RemoveCheckoutLines(c context.Context, checkoutID string, lineIDs []string) (Checkout, error)
}
