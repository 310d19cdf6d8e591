package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/myqueue"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
	"github.com/MarcGrol/furniturestore/services/cart/cartevents"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

type service struct {
	cartStore mystore.Store[Cart]
	client    commerce.Client
	queue     myqueue.TaskQueuer
	publisher mypublisher.Publisher
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Cart], client commerce.Client, queue myqueue.TaskQueuer, pub mypublisher.Publisher,
	nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		cartStore: store,
		client:    client,
		queue:     queue,
		publisher: pub,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
	}
}

func (s *service) getCart(c context.Context, cartUID string) (Cart, error) {
	if cartUID == "" {
		return newCart("", s.nower.Now()), nil
	}

	cart, found, err := s.cartStore.Get(c, cartUID)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	if !found {
		return newCart(cartUID, s.nower.Now()), nil
	}
	return cart, nil
}

func (s *service) addItem(c context.Context, cartUID string, product ProductRef, variantID string, variant *VariantDetails) (Cart, error) {
	if product.ID == "" {
		return Cart{}, myerrors.NewInvalidInputError(errors.New("missing product id"))
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Add product %s (variant %s) to cart %s", product.ID, variantID, cartUID)

	return s.mutate(c, cartUID, true, func(cart *Cart) {
		cart.AddItem(product, variantID, variant)
	})
}

func (s *service) removeItem(c context.Context, cartUID string, productID string) (Cart, error) {
	if cartUID == "" {
		return s.getCart(c, cartUID)
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Remove product %s from cart %s", productID, cartUID)

	return s.mutate(c, cartUID, true, func(cart *Cart) {
		cart.RemoveItem(productID)
	})
}

func (s *service) updateQuantity(c context.Context, cartUID string, productID string, quantity int) (Cart, error) {
	if cartUID == "" {
		return s.getCart(c, cartUID)
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Set quantity of product %s in cart %s to %d", productID, cartUID, quantity)

	return s.mutate(c, cartUID, true, func(cart *Cart) {
		cart.UpdateQuantity(productID, quantity)
	})
}

func (s *service) clear(c context.Context, cartUID string) (Cart, error) {
	if cartUID == "" {
		return s.getCart(c, cartUID)
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Clear cart %s", cartUID)

	return s.mutate(c, cartUID, false, func(cart *Cart) {
		cart.ClearCart()
	})
}

func (s *service) setOpen(c context.Context, cartUID string, open bool) (Cart, error) {
	return s.mutate(c, cartUID, false, func(cart *Cart) {
		cart.SetOpen(open)
	})
}

func (s *service) toggleOpen(c context.Context, cartUID string) (Cart, error) {
	return s.mutate(c, cartUID, false, func(cart *Cart) {
		cart.ToggleOpen()
	})
}

func (s *service) mutate(c context.Context, cartUID string, needsSync bool, mutation func(cart *Cart)) (Cart, error) {
	now := s.nower.Now()

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		cart, found, err = s.cartStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			cart = newCart(cartUID, now)
		}

		mutation(&cart)
		cart.LastModified = now

		err = s.cartStore.Put(c, cartUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	if needsSync {
		s.scheduleSync(c, cartUID)
	}

	return cart, nil
}

// scheduleSync is fire-and-forget: the local cart stays as it is when scheduling fails.
func (s *service) scheduleSync(c context.Context, cartUID string) {
	err := s.queue.Enqueue(c, myqueue.Task{
		WebhookURLPath: fmt.Sprintf("/api/cart/%s/sync", cartUID),
		Payload:        []byte{},
	})
	if err != nil {
		s.logger.Log(c, cartUID, mylog.SeverityWarn, "Error scheduling sync of cart %s: %s", cartUID, err)
	}
}

// syncWithCommerce mirrors the lines that have a variant to the remote checkout, creating
// the checkout on first use. Overlapping syncs are not ordered: the last one to finish wins.
func (s *service) syncWithCommerce(c context.Context, cartUID string) (Cart, error) {
	cart, found, err := s.cartStore.Get(c, cartUID)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Cart{}, myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
	}

	lines := cart.SyncableLines()
	if cart.CheckoutID == "" && len(lines) == 0 {
		s.logger.Log(c, cartUID, mylog.SeverityDebug, "Cart %s has nothing to sync", cartUID)
		return cart, nil
	}

	checkoutID := cart.CheckoutID
	if checkoutID == "" {
		created, err := s.client.CreateCheckout(c, []commerce.LineItem{})
		if err != nil {
			return Cart{}, err
		}
		checkoutID = created.ID
		s.logger.Log(c, cartUID, mylog.SeverityInfo, "Created checkout %s for cart %s", checkoutID, cartUID)
	}

	remote, err := s.client.ReplaceCheckoutLines(c, checkoutID, lines)
	if err != nil {
		return Cart{}, err
	}

	now := s.nower.Now()
	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		latest, found, err := s.cartStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			latest = cart
		}

		latest.CheckoutID = remote.ID
		latest.Checkout = mirrorOf(remote)
		latest.LastSynced = &now

		err = s.cartStore.Put(c, cartUID, latest)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		cart = latest
		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Synced %d lines of cart %s to checkout %s", len(lines), cartUID, remote.ID)

	return cart, nil
}

// checkout syncs synchronously and hands the visitor over to the hosted checkout.
func (s *service) checkout(c context.Context, cartUID string, email string) (string, error) {
	if cartUID == "" {
		return "", myerrors.NewInvalidInputError(errors.New("cart is empty"))
	}

	synced, err := s.syncWithCommerce(c, cartUID)
	if err != nil {
		return "", err
	}
	if len(synced.SyncableLines()) == 0 || synced.Checkout == nil || synced.Checkout.WebURL == "" {
		return "", myerrors.NewInvalidInputError(errors.New("cart contains no items that can be checked out"))
	}

	now := s.nower.Now()
	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		cart, found, err := s.cartStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			cart = synced
		}

		total := synced.Checkout.TotalPrice
		err = s.publisher.Publish(c, cartevents.TopicName, cartevents.CartCheckedOut{
			CartUID:      cartUID,
			CheckoutID:   synced.Checkout.ID,
			WebURL:       synced.Checkout.WebURL,
			Email:        email,
			ItemCount:    cart.GetItemCount(),
			TotalPrice:   total.Amount.StringFixed(2),
			CurrencyCode: total.CurrencyCode,
			ProductNames: cart.productNames(),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		cart.ClearCart()
		cart.LastModified = now
		err = s.cartStore.Put(c, cartUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Cart %s handed over to checkout %s", cartUID, synced.Checkout.ID)

	return synced.Checkout.WebURL, nil
}

// productRefOf looks up the product and the chosen variant for a form post that only
// carries the handle.
func (s *service) productRefOf(c context.Context, handle string, variantID string) (ProductRef, string, *VariantDetails, error) {
	product, err := s.client.GetProductByHandle(c, handle)
	if err != nil {
		return ProductRef{}, "", nil, err
	}

	ref := ProductRef{
		ID:           product.ID,
		Handle:       product.Handle,
		Title:        product.Title,
		Price:        product.Price().Amount,
		CurrencyCode: product.Price().CurrencyCode,
	}
	if img := product.FirstImage(); img != nil {
		ref.ImageURL = img.URL
	}

	if variantID == "" && len(product.Variants) > 0 {
		variantID = product.Variants[0].ID
	}
	if variantID == "" {
		return ref, "", nil, nil
	}

	variant, found := product.VariantByID(variantID)
	if !found {
		return ProductRef{}, "", nil, myerrors.NewInvalidInputError(fmt.Errorf("product %s has no variant %s", handle, variantID))
	}
	return ref, variant.ID, &VariantDetails{
		Title:           variant.Title,
		Price:           variant.Price.Amount,
		SelectedOptions: variant.SelectedOptions,
	}, nil
}
