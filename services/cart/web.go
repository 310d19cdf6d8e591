package cart

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/myqueue"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
	"github.com/MarcGrol/furniturestore/services/cart/cartevents"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

const (
	CookieName   = "cart_uid"
	cookieMaxAge = 30 * 24 * time.Hour
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Cart], client commerce.Client, queue myqueue.TaskQueuer, pub mypublisher.Publisher,
	nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("cart")
	return &webService{
		logger:  logger,
		service: newService(store, client, queue, pub, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.getCartAPI()).Methods("GET")
	router.HandleFunc("/api/cart", s.clearCartAPI()).Methods("DELETE")
	router.HandleFunc("/api/cart/items", s.addItemAPI()).Methods("POST")
	router.HandleFunc("/api/cart/items/{productId}", s.updateQuantityAPI()).Methods("PUT")
	router.HandleFunc("/api/cart/items/{productId}", s.removeItemAPI()).Methods("DELETE")
	router.HandleFunc("/api/cart/open", s.setOpenAPI()).Methods("PUT")
	router.HandleFunc("/api/cart/toggle", s.toggleOpenAPI()).Methods("POST")
	router.HandleFunc("/api/cart/checkout", s.checkoutAPI()).Methods("POST")
	router.HandleFunc("/api/cart/{cartUID}/sync", s.syncTask()).Methods("PUT")

	// html forms
	router.HandleFunc("/cart/add", s.addItemForm()).Methods("POST")
	router.HandleFunc("/cart/update", s.updateQuantityForm()).Methods("POST")
	router.HandleFunc("/cart/remove", s.removeItemForm()).Methods("POST")
	router.HandleFunc("/cart/clear", s.clearForm()).Methods("POST")
	router.HandleFunc("/cart/checkout", s.checkoutForm()).Methods("POST")

	return s.service.publisher.CreateTopic(c, cartevents.TopicName)
}

// CurrentCart returns the cart of the visitor, or an empty cart when there is none yet.
func (s *webService) CurrentCart(r *http.Request) (Cart, error) {
	c := mycontext.ContextFromHTTPRequest(r)
	return s.service.getCart(c, cartUIDFromCookie(r))
}

type AddItemRequest struct {
	Product ProductRef      `json:"product"`
	Variant *VariantRequest `json:"variant,omitempty"`
}

type VariantRequest struct {
	ID              string                    `json:"id"`
	Title           string                    `json:"title"`
	Price           decimal.Decimal           `json:"price"`
	SelectedOptions []commerce.SelectedOption `json:"selectedOptions"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SetOpenRequest struct {
	Open bool `json:"open"`
}

type CheckoutRequest struct {
	Email string `json:"email" form:"email"`
}

type CartResponse struct {
	Cart Cart `json:"cart"`
	// TotalPrice is computed from the local lines
	TotalPrice commerce.Money `json:"totalPrice"`
	ItemCount  int            `json:"itemCount"`
	// CheckoutTotalPrice is the authoritative total of the last synced checkout
	CheckoutTotalPrice *commerce.Money `json:"checkoutTotalPrice,omitempty"`
}

type CheckoutResponse struct {
	WebURL string `json:"webUrl"`
}

func cartResponseOf(cart Cart) CartResponse {
	resp := CartResponse{
		Cart:       cart,
		TotalPrice: cart.GetTotalPrice(),
		ItemCount:  cart.GetItemCount(),
	}
	if cart.Checkout != nil {
		total := cart.Checkout.TotalPrice
		resp.CheckoutTotalPrice = &total
	}
	return resp
}

func (s *webService) getCartAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.getCart(c, cartUIDFromCookie(r))
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(cart))
	}
}

func (s *webService) addItemAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := AddItemRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		variantID := ""
		var variant *VariantDetails
		if req.Variant != nil {
			variantID = req.Variant.ID
			variant = &VariantDetails{
				Title:           req.Variant.Title,
				Price:           req.Variant.Price,
				SelectedOptions: req.Variant.SelectedOptions,
			}
		}

		cart, err := s.service.addItem(c, s.ensureCartUID(w, r), req.Product, variantID, variant)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(cart))
	}
}

func (s *webService) updateQuantityAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := UpdateQuantityRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		cart, err := s.service.updateQuantity(c, cartUIDFromCookie(r), mux.Vars(r)["productId"], req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(cart))
	}
}

func (s *webService) removeItemAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.removeItem(c, cartUIDFromCookie(r), mux.Vars(r)["productId"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(cart))
	}
}

func (s *webService) clearCartAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.clear(c, cartUIDFromCookie(r))
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(cart))
	}
}

func (s *webService) setOpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := SetOpenRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		cart, err := s.service.setOpen(c, s.ensureCartUID(w, r), req.Open)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(cart))
	}
}

func (s *webService) toggleOpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.toggleOpen(c, s.ensureCartUID(w, r))
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(cart))
	}
}

func (s *webService) checkoutAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := CheckoutRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		webURL, err := s.service.checkout(c, cartUIDFromCookie(r), req.Email)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CheckoutResponse{WebURL: webURL})
	}
}

// syncTask is called by the task queue. It always answers 200 so a failed sync is
// never redelivered.
func (s *webService) syncTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cartUID := mux.Vars(r)["cartUID"]

		_, err := s.service.syncWithCommerce(c, cartUID)
		if err != nil {
			s.logger.Log(c, cartUID, mylog.SeverityError, "Error syncing cart %s: %s", cartUID, err)
			errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
				Message: fmt.Sprintf("Sync of cart %s failed", cartUID),
			})
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully synced cart %s", cartUID),
		})
	}
}

type addToCartForm struct {
	Handle    string `form:"handle"`
	VariantID string `form:"variantId"`
}

type productForm struct {
	ProductID string `form:"productId"`
	Quantity  int    `form:"quantity"`
}

func (s *webService) addItemForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := addToCartForm{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}
		if req.Handle == "" {
			errorWriter.WriteError(c, w, myerrors.NewInvalidInputErrorf("missing product handle"))
			return
		}

		product, variantID, variant, err := s.service.productRefOf(c, req.Handle, req.VariantID)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		_, err = s.service.addItem(c, s.ensureCartUID(w, r), product, variantID, variant)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

func (s *webService) updateQuantityForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := productForm{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		_, err = s.service.updateQuantity(c, cartUIDFromCookie(r), req.ProductID, req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

func (s *webService) removeItemForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := productForm{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		_, err = s.service.removeItem(c, cartUIDFromCookie(r), req.ProductID)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

func (s *webService) clearForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, err := s.service.clear(c, cartUIDFromCookie(r))
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

func (s *webService) checkoutForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := CheckoutRequest{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		webURL, err := s.service.checkout(c, cartUIDFromCookie(r), req.Email)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		http.Redirect(w, r, webURL, http.StatusSeeOther)
	}
}

func cartUIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || !myuuid.IsValid(cookie.Value) {
		return ""
	}
	return cookie.Value
}

// ensureCartUID hands out a new cart uid on the first mutation.
func (s *webService) ensureCartUID(w http.ResponseWriter, r *http.Request) string {
	cartUID := cartUIDFromCookie(r)
	if cartUID == "" {
		cartUID = s.service.uuider.Create()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    cartUID,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})
	return cartUID
}
