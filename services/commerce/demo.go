package commerce

import "fmt"

type demoCollection struct {
	collection     Collection
	productHandles []string
}

func demoProduct(num int, handle, title, productType, description, price string, available bool, tags ...string) Product {
	variantPrice := NewMoney(price, "EUR")
	return Product{
		ID:               fmt.Sprintf("%s%d", productGIDPrefix, num),
		Handle:           handle,
		Title:            title,
		Description:      description,
		ProductType:      productType,
		Vendor:           "Furniture Store",
		Tags:             tags,
		AvailableForSale: available,
		PriceRange: PriceRange{
			MinVariantPrice: variantPrice,
			MaxVariantPrice: variantPrice,
		},
		Images: []Image{{
			URL:     fmt.Sprintf("https://cdn.example.com/products/%s.jpg", handle),
			AltText: title,
			Width:   1200,
			Height:  900,
		}},
		Variants: []Variant{{
			ID:               fmt.Sprintf("%s%d", variantGIDPrefix, num+1000),
			Title:            "Default Title",
			Price:            variantPrice,
			AvailableForSale: available,
			SelectedOptions:  []SelectedOption{{Name: "Title", Value: "Default Title"}},
		}},
	}
}

func demoProducts() []Product {
	return []Product{
		demoProduct(1001, "cloud-sofa", "Cloud Sofa", "Sofa",
			"A deep, modular sofa with feather-wrapped cushions.", "2499.00", true, "seating", "bestseller"),
		demoProduct(1002, "haven-armchair", "Haven Armchair", "Chair",
			"A compact armchair with a solid oak frame.", "799.00", true, "seating"),
		demoProduct(1003, "linen-lounge-chair", "Linen Lounge Chair", "Chair",
			"A low lounge chair upholstered in washed linen.", "649.00", true, "seating"),
		demoProduct(1004, "cloud-ottoman", "Cloud Ottoman", "Ottoman",
			"The matching ottoman for the Cloud Sofa.", "549.00", false, "seating"),
		demoProduct(1005, "oak-dining-table", "Oak Dining Table", "Table",
			"A six-seat dining table in oiled oak.", "1299.00", true, "dining"),
		demoProduct(1006, "nordic-floor-lamp", "Nordic Floor Lamp", "Lighting",
			"A slim floor lamp with a linen shade.", "189.00", true, "lighting"),
	}
}

func demoCollections() []demoCollection {
	return []demoCollection{
		{
			collection: Collection{
				ID:          "gid://shopify/Collection/501",
				Handle:      "frontpage",
				Title:       "Featured",
				Description: "Our favourite pieces this season.",
			},
			productHandles: []string{"cloud-sofa", "oak-dining-table", "nordic-floor-lamp", "haven-armchair"},
		},
		{
			collection: Collection{
				ID:          "gid://shopify/Collection/502",
				Handle:      "living-room",
				Title:       "Living room",
				Description: "Sofas, chairs and everything to sink into.",
			},
			productHandles: []string{"cloud-sofa", "haven-armchair", "linen-lounge-chair", "cloud-ottoman", "nordic-floor-lamp"},
		},
		{
			collection: Collection{
				ID:          "gid://shopify/Collection/503",
				Handle:      "quiz",
				Title:       "Find your seat",
				Description: "The seating the quiz picks from.",
			},
			productHandles: []string{"cloud-ottoman", "haven-armchair", "cloud-sofa", "linen-lounge-chair"},
		},
	}
}
