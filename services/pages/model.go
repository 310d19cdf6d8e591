package pages

import (
	"html/template"
	"net/http"

	"github.com/MarcGrol/furniturestore/services/cart"
	"github.com/MarcGrol/furniturestore/services/commerce"
	"github.com/MarcGrol/furniturestore/services/consent"
)

const (
	featuredCollection = "frontpage"
	faqTeaserSize      = 3
)

// CartReader gives pages read access to the visitor's cart.
//
//go:generate mockgen -source=model.go -package pages -destination cartreader_mock.go CartReader
type CartReader interface {
	CurrentCart(r *http.Request) (cart.Cart, error)
}

type FAQEntry struct {
	Question string
	Answer   string
}

var faqEntries = []FAQEntry{
	{
		Question: "How long does delivery take?",
		Answer:   "Items in stock are delivered within 5 to 10 working days. Made-to-order pieces take 6 to 8 weeks.",
	},
	{
		Question: "Can I return my furniture?",
		Answer:   "You can return unused items within 30 days of delivery. We collect them free of charge.",
	},
	{
		Question: "Do you offer fabric samples?",
		Answer:   "Yes, order up to five free samples from any product page.",
	},
	{
		Question: "Is assembly included?",
		Answer:   "Sofas and chairs arrive fully assembled. Tables come with legs to attach and all the tools you need.",
	},
	{
		Question: "Which payment methods do you accept?",
		Answer:   "All major cards, iDEAL and PayPal. Payment happens on our secure hosted checkout.",
	},
}

// layoutData is shared by every page.
type layoutData struct {
	Title     string
	Path      string
	Consent   consent.State
	Scripts   template.HTML
	CartCount int
}

type homePageData struct {
	layoutData
	Featured commerce.Collection
	FAQ      []FAQEntry
}

type productsPageData struct {
	layoutData
	Products []commerce.Product
}

type productPageData struct {
	layoutData
	Product commerce.Product
}

type collectionPageData struct {
	layoutData
	Collection commerce.Collection
}

type cartPageData struct {
	layoutData
	Cart cart.Cart
}

type faqPageData struct {
	layoutData
	FAQ []FAQEntry
}

type errorPageData struct {
	layoutData
	Status  int
	Message string
}
