package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

var (
	sofa = commerce.Product{
		ID:               "gid://shopify/Product/1001",
		Handle:           "cloud-sofa",
		Title:            "Cloud Sofa",
		Description:      "A deep sofa",
		ProductType:      "Sofa",
		Vendor:           "Furniture Store",
		AvailableForSale: true,
		PriceRange: commerce.PriceRange{
			MinVariantPrice: commerce.NewMoney("2499.00", "EUR"),
			MaxVariantPrice: commerce.NewMoney("2499.00", "EUR"),
		},
		Images: []commerce.Image{{URL: "https://cdn.example.com/cloud-sofa.jpg"}},
		Variants: []commerce.Variant{{
			ID:               "gid://shopify/ProductVariant/2001",
			Title:            "Grey",
			Price:            commerce.NewMoney("2499.00", "EUR"),
			CompareAtPrice:   &commerce.Money{Amount: commerce.NewMoney("2999.00", "EUR").Amount, CurrencyCode: "EUR"},
			AvailableForSale: true,
		}},
	}
	ottoman = commerce.Product{
		ID:               "gid://shopify/Product/1004",
		Handle:           "cloud-ottoman",
		Title:            "Cloud Ottoman",
		AvailableForSale: false,
		PriceRange: commerce.PriceRange{
			MinVariantPrice: commerce.NewMoney("0.00", "EUR"),
		},
	}
)

type envelope struct {
	Success     bool                `json:"success"`
	Error       string              `json:"error"`
	Products    []ProductSummary    `json:"products"`
	Product     ProductSummary      `json:"product"`
	Collections []CollectionSummary `json:"collections"`
	Collection  CollectionSummary   `json:"collection"`
	TotalItems  int                 `json:"totalItems"`
	ValidItems  int                 `json:"validItems"`
	Issues      []FeedIssue         `json:"issues"`
}

func TestCatalogService(t *testing.T) {

	t.Run("List products with default page size", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().ListProducts(gomock.Any(), 20).Return([]commerce.Product{sofa}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/products")

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		assert.True(t, resp.Success)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "cloud-sofa", resp.Products[0].Handle)
		assert.Equal(t, "2499", resp.Products[0].Price.Amount.String())
		require.NotNil(t, resp.Products[0].CompareAtPrice)
		assert.Equal(t, "2999", resp.Products[0].CompareAtPrice.Amount.String())
		require.Len(t, resp.Products[0].Variants, 1)
		assert.Equal(t, "Grey", resp.Products[0].Variants[0].Title)
	})

	t.Run("List products with explicit page size", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().ListProducts(gomock.Any(), 5).Return([]commerce.Product{}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/products?first=5")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Empty(t, decode(t, response).Products)
	})

	t.Run("List products with invalid page size", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		for _, first := range []string{"abc", "0", "251"} {
			// when
			response := doRequest(t, router, http.MethodGet, "/api/products?first="+first)

			// then
			assert.Equal(t, 400, response.Code)
			assert.False(t, decode(t, response).Success)
		}
	})

	t.Run("Get product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetProductByID(gomock.Any(), "1001").Return(sofa, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/products/1001")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, sofa.ID, decode(t, response).Product.ID)
	})

	t.Run("Get product not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetProductByID(gomock.Any(), "999").Return(commerce.Product{}, myerrors.NewNotFoundError(errors.New("Product not found")))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/products/999")

		// then
		assert.Equal(t, 404, response.Code)
		assert.Equal(t, "Product not found", decode(t, response).Error)
	})

	t.Run("Get product by handle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetProductByHandle(gomock.Any(), "cloud-sofa").Return(sofa, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/products/handle/cloud-sofa")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "Cloud Sofa", decode(t, response).Product.Title)
	})

	t.Run("List collections", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().ListCollections(gomock.Any(), 20).Return([]commerce.Collection{
			{ID: "gid://shopify/Collection/501", Handle: "frontpage", Title: "Frontpage"},
		}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/collections")

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		require.Len(t, resp.Collections, 1)
		assert.Equal(t, "frontpage", resp.Collections[0].Handle)
	})

	t.Run("Get collection with products", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetCollectionByHandle(gomock.Any(), "living-room", 20).Return(commerce.Collection{
			ID:       "gid://shopify/Collection/502",
			Handle:   "living-room",
			Title:    "Living room",
			Products: []commerce.Product{sofa, ottoman},
		}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/collections/living-room")

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		assert.Equal(t, "Living room", resp.Collection.Title)
		require.Len(t, resp.Products, 2)
		assert.Equal(t, "cloud-ottoman", resp.Products[1].Handle)
	})

	t.Run("Get collection upstream not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetCollectionByHandle(gomock.Any(), "unknown", 20).
			Return(commerce.Collection{}, myerrors.NewNotFoundError(errors.New("Collection not found")))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/collections/unknown")

		// then
		assert.Equal(t, 404, response.Code)
		resp := decode(t, response)
		assert.False(t, resp.Success)
		assert.Equal(t, "Collection not found", resp.Error)
	})

	t.Run("Upstream failure status is mirrored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().ListCollections(gomock.Any(), 20).
			Return(nil, myerrors.NewUpstreamError(503, errors.New("commerce backend unavailable"), nil))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/collections")

		// then
		assert.Equal(t, 503, response.Code)
	})

	t.Run("Product feed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().ListProducts(gomock.Any(), 250).Return([]commerce.Product{sofa}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/feed.csv")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "text/csv; charset=utf-8", response.Header().Get("Content-Type"))
		records, err := csv.NewReader(strings.NewReader(response.Body.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, feedHeader, records[0])
		assert.Equal(t, []string{"1001", "Cloud Sofa", "A deep sofa", "http://localhost:8888/products/cloud-sofa",
			"https://cdn.example.com/cloud-sofa.jpg", "2499.00 EUR", "in stock", "Furniture Store"}, records[1])
	})

	t.Run("Validate feed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().ListProducts(gomock.Any(), 250).Return([]commerce.Product{sofa, ottoman}, nil)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/validate-feed")

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		assert.Equal(t, 2, resp.TotalItems)
		assert.Equal(t, 1, resp.ValidItems)
		assert.Contains(t, resp.Issues, FeedIssue{ProductID: "1004", Field: "image_link", Problem: "missing"})
		assert.Contains(t, resp.Issues, FeedIssue{ProductID: "1004", Field: "price", Problem: "must be positive"})
	})
}

func TestValidateFeed(t *testing.T) {
	t.Run("Unknown availability", func(t *testing.T) {
		feed := "id,title,description,link,image_link,price,availability,brand\n" +
			"1,Chair,,http://x/products/chair,http://x/chair.jpg,10.00 EUR,sold,Brand\n"

		report, err := validateFeed(strings.NewReader(feed))

		require.NoError(t, err)
		assert.Equal(t, 1, report.TotalItems)
		assert.Equal(t, 0, report.ValidItems)
		assert.Equal(t, []FeedIssue{{ProductID: "1", Field: "availability", Problem: "unknown value"}}, report.Issues)
	})

	t.Run("Price without currency", func(t *testing.T) {
		feed := "id,title,description,link,image_link,price,availability,brand\n" +
			"2,Table,,http://x/products/table,http://x/table.jpg,abc,in stock,Brand\n"

		report, err := validateFeed(strings.NewReader(feed))

		require.NoError(t, err)
		assert.Equal(t, []FeedIssue{{ProductID: "2", Field: "price", Problem: "expected amount and currency"}}, report.Issues)
	})

	t.Run("Unexpected header", func(t *testing.T) {
		_, err := validateFeed(strings.NewReader("a,b,c,d,e,f,g,h\n"))

		assert.Error(t, err)
	})
}

func doRequest(t *testing.T, router *mux.Router, method string, url string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(method, url, nil)
	assert.NoError(t, err)
	request.Host = "localhost:8888"
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func decode(t *testing.T, response *httptest.ResponseRecorder) envelope {
	resp := envelope{}
	err := json.Unmarshal(response.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *commerce.MockClient) {
	c := context.TODO()
	client := commerce.NewMockClient(ctrl)

	sut := NewService(client)
	router := mux.NewRouter()

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, client
}
