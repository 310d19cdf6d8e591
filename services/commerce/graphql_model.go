package commerce

import "encoding/json"

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

type gqlError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type gqlEdge[T any] struct {
	Node T `json:"node"`
}

type gqlConnection[T any] struct {
	Edges []gqlEdge[T] `json:"edges"`
}

func (conn gqlConnection[T]) nodes() []T {
	result := make([]T, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		result = append(result, e.Node)
	}
	return result
}

type gqlProduct struct {
	ID               string                 `json:"id"`
	Handle           string                 `json:"handle"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	ProductType      string                 `json:"productType"`
	Vendor           string                 `json:"vendor"`
	Tags             []string               `json:"tags"`
	AvailableForSale bool                   `json:"availableForSale"`
	PriceRange       PriceRange             `json:"priceRange"`
	Images           gqlConnection[Image]   `json:"images"`
	Variants         gqlConnection[Variant] `json:"variants"`
}

func (p gqlProduct) toProduct() Product {
	return Product{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		Description:      p.Description,
		ProductType:      p.ProductType,
		Vendor:           p.Vendor,
		Tags:             p.Tags,
		AvailableForSale: p.AvailableForSale,
		PriceRange:       p.PriceRange,
		Images:           p.Images.nodes(),
		Variants:         p.Variants.nodes(),
	}
}

func toProducts(conn gqlConnection[gqlProduct]) []Product {
	result := make([]Product, 0, len(conn.Edges))
	for _, p := range conn.nodes() {
		result = append(result, p.toProduct())
	}
	return result
}

type gqlCollection struct {
	ID          string                     `json:"id"`
	Handle      string                     `json:"handle"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Image       *Image                     `json:"image"`
	Products    gqlConnection[gqlProduct] `json:"products"`
}

func (c gqlCollection) toCollection() Collection {
	return Collection{
		ID:          c.ID,
		Handle:      c.Handle,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Products:    toProducts(c.Products),
	}
}

type gqlVariantRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price Money  `json:"price"`
}

type gqlLineItem struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Quantity int            `json:"quantity"`
	Variant  *gqlVariantRef `json:"variant"`
}

type gqlCheckout struct {
	ID            string                     `json:"id"`
	WebURL        string                     `json:"webUrl"`
	SubtotalPrice Money                      `json:"subtotalPrice"`
	TotalTax      Money                      `json:"totalTax"`
	TotalPrice    Money                      `json:"totalPrice"`
	LineItems     gqlConnection[gqlLineItem] `json:"lineItems"`
}

func (c gqlCheckout) toCheckout() Checkout {
	lines := make([]CheckoutLineItem, 0, len(c.LineItems.Edges))
	for _, l := range c.LineItems.nodes() {
		line := CheckoutLineItem{
			ID:       l.ID,
			Title:    l.Title,
			Quantity: l.Quantity,
		}
		if l.Variant != nil {
			price := l.Variant.Price
			line.VariantID = l.Variant.ID
			line.VariantTitle = l.Variant.Title
			line.Price = &price
		}
		lines = append(lines, line)
	}
	return Checkout{
		ID:            c.ID,
		WebURL:        c.WebURL,
		SubtotalPrice: c.SubtotalPrice,
		TotalTax:      c.TotalTax,
		TotalPrice:    c.TotalPrice,
		LineItems:     lines,
	}
}

type gqlUserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}

type gqlCheckoutPayload struct {
	Checkout           *gqlCheckout   `json:"checkout"`
	CheckoutUserErrors []gqlUserError `json:"checkoutUserErrors"`
}
