package commerce

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	productGIDPrefix = "gid://shopify/Product/"
	variantGIDPrefix = "gid://shopify/ProductVariant/"
)

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

func NewMoney(amount string, currencyCode string) Money {
	return Money{
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: currencyCode,
	}
}

func (m Money) Multiply(quantity int) Money {
	return Money{
		Amount:       m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		CurrencyCode: m.CurrencyCode,
	}
}

func (m Money) Add(other Money) Money {
	currency := m.CurrencyCode
	if currency == "" {
		currency = other.CurrencyCode
	}
	return Money{
		Amount:       m.Amount.Add(other.Amount),
		CurrencyCode: currency,
	}
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compareAtPrice,omitempty"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

type Product struct {
	ID               string     `json:"id"`
	Handle           string     `json:"handle"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ProductType      string     `json:"productType"`
	Vendor           string     `json:"vendor"`
	Tags             []string   `json:"tags"`
	AvailableForSale bool       `json:"availableForSale"`
	PriceRange       PriceRange `json:"priceRange"`
	Images           []Image    `json:"images"`
	Variants         []Variant  `json:"variants"`
}

// Price is the lowest variant price.
func (p Product) Price() Money {
	return p.PriceRange.MinVariantPrice
}

// CompareAtPrice returns the first variant's compare-at price, when it is discounted.
func (p Product) CompareAtPrice() *Money {
	for _, v := range p.Variants {
		if v.CompareAtPrice != nil && v.CompareAtPrice.Amount.GreaterThan(v.Price.Amount) {
			return v.CompareAtPrice
		}
	}
	return nil
}

func (p Product) FirstImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

func (p Product) VariantByID(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

type Collection struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *Image    `json:"image,omitempty"`
	Products    []Product `json:"products,omitempty"`
}

type CheckoutLineItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Quantity     int    `json:"quantity"`
	VariantID    string `json:"variantId"`
	VariantTitle string `json:"variantTitle,omitempty"`
	Price        *Money `json:"price,omitempty"`
}

type Checkout struct {
	ID            string             `json:"id"`
	WebURL        string             `json:"webUrl"`
	SubtotalPrice Money              `json:"subtotalPrice"`
	TotalTax      Money              `json:"totalTax"`
	TotalPrice    Money              `json:"totalPrice"`
	LineItems     []CheckoutLineItem `json:"lineItems"`
}

// LineItem adds a variant to a checkout.
type LineItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// LineUpdate changes the quantity of an existing checkout line.
type LineUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// ProductGID accepts both a numeric product id and a full global id.
func ProductGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return productGIDPrefix + id
}

// NumericID returns the last path segment of a global id.
func NumericID(gid string) string {
	idx := strings.LastIndex(gid, "/")
	if idx < 0 {
		return gid
	}
	return gid[idx+1:]
}
