package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/furniturestore/services/commerce"
)

// ProductRef is the part of a product the cart needs to render a line without
// going back to the commerce backend.
type ProductRef struct {
	ID           string          `json:"id"`
	Handle       string          `json:"handle"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	CurrencyCode string          `json:"currencyCode"`
	ImageURL     string          `json:"imageUrl,omitempty"`
}

type VariantDetails struct {
	Title           string                    `json:"title"`
	Price           decimal.Decimal           `json:"price"`
	SelectedOptions []commerce.SelectedOption `json:"selectedOptions,omitempty"`
}

type CartItem struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
	// VariantID refers to the remote variant; lines without one are never synced
	VariantID string          `json:"variantId,omitempty"`
	Variant   *VariantDetails `json:"variant,omitempty"`
}

func (i CartItem) UnitPrice() decimal.Decimal {
	if i.Variant != nil {
		return i.Variant.Price
	}
	return i.Product.Price
}

func (i CartItem) LinePrice() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CheckoutMirror is the last known state of the remote checkout.
type CheckoutMirror struct {
	ID            string                      `json:"id"`
	WebURL        string                      `json:"webUrl"`
	SubtotalPrice commerce.Money              `json:"subtotalPrice"`
	TotalTax      commerce.Money              `json:"totalTax"`
	TotalPrice    commerce.Money              `json:"totalPrice"`
	LineItems     []commerce.CheckoutLineItem `json:"lineItems"`
}

func mirrorOf(checkout commerce.Checkout) *CheckoutMirror {
	return &CheckoutMirror{
		ID:            checkout.ID,
		WebURL:        checkout.WebURL,
		SubtotalPrice: checkout.SubtotalPrice,
		TotalTax:      checkout.TotalTax,
		TotalPrice:    checkout.TotalPrice,
		LineItems:     checkout.LineItems,
	}
}

type Cart struct {
	UID          string          `json:"uid"`
	Items        []CartItem      `json:"items"`
	IsOpen       bool            `json:"isOpen"`
	CheckoutID   string          `json:"checkoutId,omitempty"`
	Checkout     *CheckoutMirror `json:"checkout,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	LastModified time.Time       `json:"lastModified"`
	LastSynced   *time.Time      `json:"lastSynced,omitempty"`
}

func newCart(uid string, now time.Time) Cart {
	return Cart{
		UID:          uid,
		Items:        []CartItem{},
		CreatedAt:    now,
		LastModified: now,
	}
}

// AddItem increments the line with the same product and variant or appends a new line.
func (c *Cart) AddItem(product ProductRef, variantID string, variant *VariantDetails) {
	for idx := range c.Items {
		if c.Items[idx].Product.ID == product.ID && c.Items[idx].VariantID == variantID {
			c.Items[idx].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		Product:   product,
		Quantity:  1,
		VariantID: variantID,
		Variant:   variant,
	})
}

// RemoveItem removes every line of the product, whatever its variant.
func (c *Cart) RemoveItem(productID string) {
	remaining := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Product.ID != productID {
			remaining = append(remaining, item)
		}
	}
	c.Items = remaining
}

func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for idx := range c.Items {
		if c.Items[idx].Product.ID == productID {
			c.Items[idx].Quantity = quantity
		}
	}
}

// ClearCart forgets the remote checkout as well; it is not cancelled upstream.
func (c *Cart) ClearCart() {
	c.Items = []CartItem{}
	c.CheckoutID = ""
	c.Checkout = nil
}

func (c *Cart) SetOpen(open bool) {
	c.IsOpen = open
}

func (c *Cart) ToggleOpen() {
	c.IsOpen = !c.IsOpen
}

// GetTotalPrice is computed locally from the cart lines; the remote checkout total is
// the authoritative one.
func (c Cart) GetTotalPrice() commerce.Money {
	total := commerce.Money{Amount: decimal.Zero}
	for _, item := range c.Items {
		total.Amount = total.Amount.Add(item.LinePrice())
		if total.CurrencyCode == "" {
			total.CurrencyCode = item.Product.CurrencyCode
		}
	}
	return total
}

func (c Cart) GetItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// SyncableLines are the lines that can be mirrored to the remote checkout.
func (c Cart) SyncableLines() []commerce.LineItem {
	lines := []commerce.LineItem{}
	for _, item := range c.Items {
		if item.VariantID != "" {
			lines = append(lines, commerce.LineItem{
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}
	}
	return lines
}

func (c Cart) productNames() []string {
	names := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		names = append(names, item.Product.Title)
	}
	return names
}
