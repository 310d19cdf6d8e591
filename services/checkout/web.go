package checkout

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(client commerce.Client) *webService {
	logger := mylog.New("checkout")
	return &webService{
		logger:  logger,
		service: newService(client, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/checkout", s.createCheckout()).Methods("POST")
	router.HandleFunc("/api/checkout/{checkoutId}/line-items", s.addLineItems()).Methods("POST")
	router.HandleFunc("/api/checkout/{checkoutId}/line-items", s.updateLineItems()).Methods("PUT")
	router.HandleFunc("/api/checkout/{checkoutId}/line-items/replace", s.replaceLineItems()).Methods("PUT")
	router.HandleFunc("/api/checkout/{checkoutId}/line-items", s.removeLineItems()).Methods("DELETE")

	return nil
}

func (s *webService) createCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := LineItemsRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		checkout, err := s.service.create(c, req.LineItems)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CheckoutResponse{Checkout: checkout})
	}
}

func (s *webService) addLineItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := LineItemsRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		checkout, err := s.service.addLines(c, checkoutIDFromRequest(r), req.LineItems)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CheckoutResponse{Checkout: checkout})
	}
}

func (s *webService) updateLineItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := LineUpdatesRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		checkout, err := s.service.updateLines(c, checkoutIDFromRequest(r), req.LineItems)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CheckoutResponse{Checkout: checkout})
	}
}

func (s *webService) replaceLineItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := LineItemsRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		checkout, err := s.service.replaceLines(c, checkoutIDFromRequest(r), req.LineItems)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CheckoutResponse{Checkout: checkout})
	}
}

func (s *webService) removeLineItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := RemoveLineItemsRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		checkout, err := s.service.removeLines(c, checkoutIDFromRequest(r), req.LineItemIDs)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CheckoutResponse{Checkout: checkout})
	}
}

// Checkout ids are global ids like gid://shopify/Checkout/abc and arrive url-encoded.
func checkoutIDFromRequest(r *http.Request) string {
	id := mux.Vars(r)["checkoutId"]
	unescaped, err := url.PathUnescape(id)
	if err != nil {
		return id
	}
	return unescaped
}
