package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

var checkout1 = commerce.Checkout{
	ID:         "abc123",
	WebURL:     "https://checkout.example.com/checkouts/abc123",
	TotalPrice: commerce.NewMoney("2499.00", "EUR"),
	LineItems: []commerce.CheckoutLineItem{
		{ID: "line1", Title: "Cloud Sofa", Quantity: 1, VariantID: "gid://shopify/ProductVariant/2001"},
	},
}

type envelope struct {
	Success  bool              `json:"success"`
	Error    string            `json:"error"`
	Details  any               `json:"details"`
	Checkout commerce.Checkout `json:"checkout"`
}

func TestCheckoutService(t *testing.T) {

	t.Run("Create checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().CreateCheckout(gomock.Any(), []commerce.LineItem{
			{VariantID: "gid://shopify/ProductVariant/2001", Quantity: 1},
		}).Return(checkout1, nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/checkout",
			`{"lineItems":[{"variantId":"gid://shopify/ProductVariant/2001","quantity":1}]}`)

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		assert.True(t, resp.Success)
		assert.Equal(t, checkout1.WebURL, resp.Checkout.WebURL)
		require.Len(t, resp.Checkout.LineItems, 1)
	})

	t.Run("Create empty checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().CreateCheckout(gomock.Any(), gomock.Len(0)).Return(commerce.Checkout{ID: "empty"}, nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/checkout", `{"lineItems":[]}`)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "empty", decode(t, response).Checkout.ID)
	})

	t.Run("Create checkout with invalid lines", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		for _, body := range []string{
			`{"lineItems":[{"quantity":1}]}`,
			`{"lineItems":[{"variantId":"v1","quantity":0}]}`,
			`{"lineItems":`,
		} {
			// when
			response := doRequest(t, router, http.MethodPost, "/api/checkout", body)

			// then
			assert.Equal(t, 400, response.Code, body)
			assert.False(t, decode(t, response).Success)
		}
	})

	t.Run("Add line items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().AddCheckoutLines(gomock.Any(), "abc123", []commerce.LineItem{{VariantID: "v2", Quantity: 2}}).Return(checkout1, nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/checkout/abc123/line-items",
			`{"lineItems":[{"variantId":"v2","quantity":2}]}`)

		// then
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Update line items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().UpdateCheckoutLines(gomock.Any(), "abc123", []commerce.LineUpdate{{ID: "line1", Quantity: 3}}).Return(checkout1, nil)

		// when
		response := doRequest(t, router, http.MethodPut, "/api/checkout/abc123/line-items",
			`{"lineItems":[{"id":"line1","quantity":3}]}`)

		// then
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Update line items without id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPut, "/api/checkout/abc123/line-items",
			`{"lineItems":[{"quantity":3}]}`)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Replace line items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().ReplaceCheckoutLines(gomock.Any(), "abc123", []commerce.LineItem{{VariantID: "v1", Quantity: 4}}).Return(checkout1, nil)

		// when
		response := doRequest(t, router, http.MethodPut, "/api/checkout/abc123/line-items/replace",
			`{"lineItems":[{"variantId":"v1","quantity":4}]}`)

		// then
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Remove line items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().RemoveCheckoutLines(gomock.Any(), "abc123", []string{"line1"}).Return(commerce.Checkout{ID: "abc123"}, nil)

		// when
		response := doRequest(t, router, http.MethodDelete, "/api/checkout/abc123/line-items", `{"lineItemIds":["line1"]}`)

		// then
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Remove without line ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodDelete, "/api/checkout/abc123/line-items", `{"lineItemIds":[]}`)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("User errors are returned with details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().AddCheckoutLines(gomock.Any(), "abc123", gomock.Any()).Return(commerce.Checkout{},
			myerrors.WithDetails(myerrors.NewInvalidInputError(errors.New("Variant is sold out")),
				[]map[string]string{{"field": "lineItems", "message": "Variant is sold out"}}))

		// when
		response := doRequest(t, router, http.MethodPost, "/api/checkout/abc123/line-items",
			`{"lineItems":[{"variantId":"v9","quantity":1}]}`)

		// then
		assert.Equal(t, 400, response.Code)
		resp := decode(t, response)
		assert.Equal(t, "Variant is sold out", resp.Error)
		assert.NotNil(t, resp.Details)
	})
}

func TestCheckoutAgainstFake(t *testing.T) {
	// given
	c := context.TODO()
	fake := commerce.NewSeededFake(myuuid.RealUUIDer{})
	sut := newService(fake, mylog.New("checkout"))

	// when
	created, err := sut.create(c, []commerce.LineItem{{VariantID: "gid://shopify/ProductVariant/2001", Quantity: 2}})

	// then
	require.NoError(t, err)
	require.Len(t, created.LineItems, 1)
	assert.Equal(t, 2, created.LineItems[0].Quantity)
	assert.Equal(t, "4998", created.TotalPrice.Amount.String())
}

func doRequest(t *testing.T, router *mux.Router, method string, url string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request, err := http.NewRequest(method, url, reader)
	assert.NoError(t, err)
	request.Host = "localhost:8888"
	request.Header.Set("Content-Type", "application/json")
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
