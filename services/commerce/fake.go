package commerce

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
)

// Fake is an in-memory commerce backend. It serves the demo catalog when no shop is
// configured and is held to the same contract as the graphql client.
type Fake struct {
	uuider      myuuid.UUIDer
	Products    *mystore.InMemoryStore[Product]
	Collections *mystore.InMemoryStore[Collection]
	Checkouts   *mystore.InMemoryStore[Checkout]
	// collection handle -> product handles, in display order
	memberships map[string][]string
}

func NewFake(uuider myuuid.UUIDer) *Fake {
	c := context.Background()
	products, _, _ := mystore.NewInMemoryStore[Product](c)
	collections, _, _ := mystore.NewInMemoryStore[Collection](c)
	checkouts, _, _ := mystore.NewInMemoryStore[Checkout](c)
	return &Fake{
		uuider:      uuider,
		Products:    products,
		Collections: collections,
		Checkouts:   checkouts,
		memberships: map[string][]string{},
	}
}

// NewSeededFake returns a fake filled with the demo furniture catalog.
func NewSeededFake(uuider myuuid.UUIDer) *Fake {
	f := NewFake(uuider)
	for _, p := range demoProducts() {
		f.AddProduct(p)
	}
	for _, dc := range demoCollections() {
		f.AddCollection(dc.collection, dc.productHandles...)
	}
	return f
}

func (f *Fake) AddProduct(p Product) {
	_ = f.Products.Put(context.Background(), p.Handle, p)
}

func (f *Fake) AddCollection(col Collection, productHandles ...string) {
	col.Products = nil
	_ = f.Collections.Put(context.Background(), col.Handle, col)
	f.Collections.Lock()
	f.memberships[col.Handle] = productHandles
	f.Collections.Unlock()
}

func (f *Fake) ListProducts(c context.Context, first int) ([]Product, error) {
	products, err := f.Products.Query(c, nil, "ID")
	if err != nil {
		return nil, err
	}
	return limit(products, first), nil
}

func (f *Fake) GetProductByID(c context.Context, id string) (Product, error) {
	found, err := f.Products.Query(c, []mystore.Filter{{Field: "ID", Compare: "=", Value: ProductGID(id)}}, "")
	if err != nil {
		return Product{}, err
	}
	if len(found) == 0 {
		return Product{}, myerrors.NewNotFoundError(errors.New("Product not found"))
	}
	return found[0], nil
}

func (f *Fake) GetProductByHandle(c context.Context, handle string) (Product, error) {
	p, exists, err := f.Products.Get(c, handle)
	if err != nil {
		return Product{}, err
	}
	if !exists {
		return Product{}, myerrors.NewNotFoundError(errors.New("Product not found"))
	}
	return p, nil
}

func (f *Fake) ListCollections(c context.Context, first int) ([]Collection, error) {
	collections, err := f.Collections.Query(c, nil, "ID")
	if err != nil {
		return nil, err
	}
	return limit(collections, first), nil
}

func (f *Fake) GetCollectionByHandle(c context.Context, handle string, firstProducts int) (Collection, error) {
	col, exists, err := f.Collections.Get(c, handle)
	if err != nil {
		return Collection{}, err
	}
	if !exists {
		return Collection{}, myerrors.NewNotFoundError(errors.New("Collection not found"))
	}

	f.Collections.Lock()
	handles := append([]string{}, f.memberships[handle]...)
	f.Collections.Unlock()

	col.Products = []Product{}
	for _, h := range handles {
		p, exists, err := f.Products.Get(c, h)
		if err != nil {
			return Collection{}, err
		}
		if exists {
			col.Products = append(col.Products, p)
		}
	}
	col.Products = limit(col.Products, firstProducts)

	return col, nil
}

func (f *Fake) CreateCheckout(c context.Context, lines []LineItem) (Checkout, error) {
	checkoutUID := f.uuider.Create()
	checkout := Checkout{
		ID:        "gid://shopify/Checkout/" + checkoutUID,
		WebURL:    "https://checkout.example.com/checkouts/" + checkoutUID,
		LineItems: []CheckoutLineItem{},
	}
	checkout, err := f.addLines(c, checkout, lines)
	if err != nil {
		return Checkout{}, err
	}
	return f.save(c, checkout)
}

func (f *Fake) ReplaceCheckoutLines(c context.Context, checkoutID string, lines []LineItem) (Checkout, error) {
	var result Checkout
	err := f.Checkouts.RunInTransaction(c, func(c context.Context) error {
		checkout, err := f.getCheckout(c, checkoutID)
		if err != nil {
			return err
		}
		checkout.LineItems = []CheckoutLineItem{}
		checkout, err = f.addLines(c, checkout, lines)
		if err != nil {
			return err
		}
		result, err = f.save(c, checkout)
		return err
	})
	return result, err
}

func (f *Fake) AddCheckoutLines(c context.Context, checkoutID string, lines []LineItem) (Checkout, error) {
	var result Checkout
	err := f.Checkouts.RunInTransaction(c, func(c context.Context) error {
		checkout, err := f.getCheckout(c, checkoutID)
		if err != nil {
			return err
		}
		checkout, err = f.addLines(c, checkout, lines)
		if err != nil {
			return err
		}
		result, err = f.save(c, checkout)
		return err
	})
	return result, err
}

func (f *Fake) UpdateCheckoutLines(c context.Context, checkoutID string, lines []LineUpdate) (Checkout, error) {
	var result Checkout
	err := f.Checkouts.RunInTransaction(c, func(c context.Context) error {
		checkout, err := f.getCheckout(c, checkoutID)
		if err != nil {
			return err
		}
		for _, update := range lines {
			idx := lineIndex(checkout, update.ID)
			if idx < 0 {
				return invalidLine(update.ID)
			}
			if update.Quantity <= 0 {
				checkout.LineItems = append(checkout.LineItems[:idx], checkout.LineItems[idx+1:]...)
				continue
			}
			checkout.LineItems[idx].Quantity = update.Quantity
		}
		result, err = f.save(c, checkout)
		return err
	})
	return result, err
}

func (f *Fake) RemoveCheckoutLines(c context.Context, checkoutID string, lineIDs []string) (Checkout, error) {
	var result Checkout
	err := f.Checkouts.RunInTransaction(c, func(c context.Context) error {
		checkout, err := f.getCheckout(c, checkoutID)
		if err != nil {
			return err
		}
		for _, id := range lineIDs {
			idx := lineIndex(checkout, id)
			if idx < 0 {
				return invalidLine(id)
			}
			checkout.LineItems = append(checkout.LineItems[:idx], checkout.LineItems[idx+1:]...)
		}
		result, err = f.save(c, checkout)
		return err
	})
	return result, err
}

func (f *Fake) getCheckout(c context.Context, checkoutID string) (Checkout, error) {
	checkout, exists, err := f.Checkouts.Get(c, checkoutID)
	if err != nil {
		return Checkout{}, err
	}
	if !exists {
		return Checkout{}, myerrors.NewNotFoundError(errors.New("Checkout not found"))
	}
	// never modify the stored lines in place
	checkout.LineItems = append([]CheckoutLineItem{}, checkout.LineItems...)
	return checkout, nil
}

// addLines merges lines of a variant that is already in the checkout, like the real backend does.
func (f *Fake) addLines(c context.Context, checkout Checkout, lines []LineItem) (Checkout, error) {
	for _, l := range lines {
		if l.Quantity < 1 {
			return Checkout{}, userError("quantity", "Quantity must be greater than or equal to 1")
		}
		product, variant, err := f.findVariant(c, l.VariantID)
		if err != nil {
			return Checkout{}, err
		}

		merged := false
		for i := range checkout.LineItems {
			if checkout.LineItems[i].VariantID == l.VariantID {
				checkout.LineItems[i].Quantity += l.Quantity
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		price := variant.Price
		checkout.LineItems = append(checkout.LineItems, CheckoutLineItem{
			ID:           "gid://shopify/CheckoutLineItem/" + f.uuider.Create(),
			Title:        product.Title,
			Quantity:     l.Quantity,
			VariantID:    variant.ID,
			VariantTitle: variant.Title,
			Price:        &price,
		})
	}
	return checkout, nil
}

func (f *Fake) findVariant(c context.Context, variantID string) (Product, Variant, error) {
	products, err := f.Products.List(c)
	if err != nil {
		return Product{}, Variant{}, err
	}
	for _, p := range products {
		if v, found := p.VariantByID(variantID); found {
			return p, v, nil
		}
	}
	return Product{}, Variant{}, userError("variantId", fmt.Sprintf("Variant %s does not exist", variantID))
}

func (f *Fake) save(c context.Context, checkout Checkout) (Checkout, error) {
	subtotal := Money{CurrencyCode: "EUR"}
	for _, l := range checkout.LineItems {
		if l.Price != nil {
			subtotal = subtotal.Add(l.Price.Multiply(l.Quantity))
		}
	}
	checkout.SubtotalPrice = subtotal
	checkout.TotalTax = Money{CurrencyCode: subtotal.CurrencyCode}
	checkout.TotalPrice = subtotal

	err := f.Checkouts.Put(c, checkout.ID, checkout)
	if err != nil {
		return Checkout{}, err
	}
	return checkout, nil
}

func lineIndex(checkout Checkout, lineID string) int {
	for i, l := range checkout.LineItems {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

func invalidLine(lineID string) error {
	return userError("lineItemId", fmt.Sprintf("Line item %s does not exist", lineID))
}

func userError(field string, message string) error {
	return myerrors.WithDetails(myerrors.NewInvalidInputError(errors.New(message)), []gqlUserError{{
		Field:   strings.Split(field, "."),
		Message: message,
		Code:    "INVALID",
	}})
}

func limit[T any](items []T, first int) []T {
	if first > 0 && len(items) > first {
		return items[:first]
	}
	return items
}
