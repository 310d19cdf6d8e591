package catalog

import "github.com/MarcGrol/furniturestore/services/commerce"

type VariantSummary struct {
	ID               string                    `json:"id"`
	Title            string                    `json:"title"`
	Price            commerce.Money            `json:"price"`
	AvailableForSale bool                      `json:"availableForSale"`
	SelectedOptions  []commerce.SelectedOption `json:"selectedOptions"`
}

type ProductSummary struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	ProductType      string           `json:"productType"`
	Vendor           string           `json:"vendor"`
	Tags             []string         `json:"tags"`
	AvailableForSale bool             `json:"availableForSale"`
	Price            commerce.Money   `json:"price"`
	CompareAtPrice   *commerce.Money  `json:"compareAtPrice,omitempty"`
	Images           []commerce.Image `json:"images"`
	Variants         []VariantSummary `json:"variants"`
}

type CollectionSummary struct {
	ID          string          `json:"id"`
	Handle      string          `json:"handle"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       *commerce.Image `json:"image,omitempty"`
}

type ProductListResponse struct {
	Products []ProductSummary `json:"products"`
}

type ProductResponse struct {
	Product ProductSummary `json:"product"`
}

type CollectionListResponse struct {
	Collections []CollectionSummary `json:"collections"`
}

type CollectionResponse struct {
	Collection CollectionSummary `json:"collection"`
	Products   []ProductSummary  `json:"products"`
}

type FeedIssue struct {
	ProductID string `json:"productId"`
	Field     string `json:"field"`
	Problem   string `json:"problem"`
}

type FeedReport struct {
	TotalItems int         `json:"totalItems"`
	ValidItems int         `json:"validItems"`
	Issues     []FeedIssue `json:"issues"`
}

func summarizeProduct(p commerce.Product) ProductSummary {
	variants := make([]VariantSummary, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantSummary{
			ID:               v.ID,
			Title:            v.Title,
			Price:            v.Price,
			AvailableForSale: v.AvailableForSale,
			SelectedOptions:  v.SelectedOptions,
		})
	}
	images := p.Images
	if images == nil {
		images = []commerce.Image{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductSummary{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		Description:      p.Description,
		ProductType:      p.ProductType,
		Vendor:           p.Vendor,
		Tags:             tags,
		AvailableForSale: p.AvailableForSale,
		Price:            p.Price(),
		CompareAtPrice:   p.CompareAtPrice(),
		Images:           images,
		Variants:         variants,
	}
}

func summarizeProducts(products []commerce.Product) []ProductSummary {
	result := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		result = append(result, summarizeProduct(p))
	}
	return result
}

func summarizeCollection(col commerce.Collection) CollectionSummary {
	return CollectionSummary{
		ID:          col.ID,
		Handle:      col.Handle,
		Title:       col.Title,
		Description: col.Description,
		Image:       col.Image,
	}
}
