package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myerrors"
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
	logger := mylog.New("catalog")
	return &webService{
		logger:  logger,
		service: newService(client, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/products", s.listProducts()).Methods("GET")
	router.HandleFunc("/api/products/handle/{handle}", s.getProductByHandle()).Methods("GET")
	router.HandleFunc("/api/products/{id}", s.getProduct()).Methods("GET")
	router.HandleFunc("/api/collections", s.listCollections()).Methods("GET")
	router.HandleFunc("/api/collections/{handle}", s.getCollection()).Methods("GET")
	router.HandleFunc("/api/feed.csv", s.getFeed()).Methods("GET")
	router.HandleFunc("/api/validate-feed", s.validateFeed()).Methods("GET")

	return nil
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		first, err := pageSizeFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		products, err := s.service.listProducts(c, first)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, ProductListResponse{Products: products})
	}
}

func (s *webService) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProductByID(c, mux.Vars(r)["id"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, ProductResponse{Product: product})
	}
}

func (s *webService) getProductByHandle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProductByHandle(c, mux.Vars(r)["handle"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, ProductResponse{Product: product})
	}
}

func (s *webService) listCollections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		collections, err := s.service.listCollections(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CollectionListResponse{Collections: collections})
	}
}

func (s *webService) getCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		first, err := pageSizeFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		resp, err := s.service.getCollection(c, mux.Vars(r)["handle"], first)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) getFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		feed, err := s.service.buildFeed(c, myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `inline; filename="feed.csv"`)
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(feed)
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityWarn, "Error writing feed: %s", err)
		}
	}
}

func (s *webService) validateFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		report, err := s.service.validateFeed(c, myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, report)
	}
}

func pageSizeFromRequest(r *http.Request) (int, error) {
	value := r.URL.Query().Get("first")
	if value == "" {
		return commerce.DefaultPageSize, nil
	}
	first, err := strconv.Atoi(value)
	if err != nil || first < 1 || first > commerce.MaxPageSize {
		return 0, myerrors.NewInvalidInputError(fmt.Errorf("parameter 'first' must be a number between 1 and %d", commerce.MaxPageSize))
	}
	return first, nil
}
