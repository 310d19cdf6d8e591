package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
	"github.com/MarcGrol/furniturestore/services/commerce"
	"github.com/MarcGrol/furniturestore/services/consent"
)

var quizConfig = Config{
	CollectionHandle: "quiz",
	PreferredProduct: "Cloud",
	Threshold:        10,
}

func TestQuizAPI(t *testing.T) {

	t.Run("Get questions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/quiz", "application/json", "")

		// then
		assert.Equal(t, 200, response.Code)
		resp := QuestionsResponse{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		require.Len(t, resp.Questions, 5)
		for _, q := range resp.Questions {
			assert.Len(t, q.Options, 4)
		}
	})

	t.Run("Recommendation from the quiz collection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetCollectionByHandle(gomock.Any(), "quiz", commerce.DefaultPageSize).Return(commerce.Collection{
			Handle: "quiz",
			Products: []commerce.Product{
				{ID: "gid://shopify/Product/1004", Title: "Cloud Ottoman", AvailableForSale: false},
				{ID: "gid://shopify/Product/1002", Title: "Haven Armchair", AvailableForSale: true},
				{ID: "gid://shopify/Product/1001", Title: "Cloud Sofa", AvailableForSale: true},
			},
		}, nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/quiz/recommendation", "application/json", `{"answers":[3,3,3,3,3]}`)

		// then
		assert.Equal(t, 200, response.Code)
		resp := struct {
			Success bool             `json:"success"`
			Score   int              `json:"score"`
			Product commerce.Product `json:"product"`
		}{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 15, resp.Score)
		assert.Equal(t, "Cloud Sofa", resp.Product.Title)
	})

	t.Run("Invalid answers do not reach the backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/quiz/recommendation", "application/json", `{"answers":[3,3,3]}`)

		// then
		assert.Equal(t, 400, response.Code)
		assert.JSONEq(t, `{"success":false,"error":"expected 5 answers, got 3"}`, response.Body.String())
	})

	t.Run("Missing collection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetCollectionByHandle(gomock.Any(), "quiz", gomock.Any()).
			Return(commerce.Collection{}, myerrors.NewNotFoundError(errors.New("Collection not found")))

		// when
		response := doRequest(t, router, http.MethodPost, "/api/quiz/recommendation", "application/json", `{"answers":[0,0,0,0,0]}`)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Recommendation via form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(t, ctrl)

		// given
		client.EXPECT().GetCollectionByHandle(gomock.Any(), "quiz", gomock.Any()).Return(commerce.Collection{
			Products: []commerce.Product{
				{Title: "Haven Armchair", AvailableForSale: true},
				{Title: "Cloud Sofa", AvailableForSale: true},
			},
		}, nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/quiz/recommendation", "application/x-www-form-urlencoded", url.Values{
			"answers[0]": {"0"},
			"answers[1]": {"1"},
			"answers[2]": {"0"},
			"answers[3]": {"1"},
			"answers[4]": {"0"},
		}.Encode())

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"title":"Haven Armchair"`)
		assert.Contains(t, response.Body.String(), `"score":2`)
	})
}

func TestQuizPage(t *testing.T) {

	t.Run("Questions page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/quiz", "", "")

		// then
		assert.Equal(t, 200, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, `name="answers[4]" value="3"`)
		assert.Contains(t, body, "consent-banner")
		assert.NotContains(t, body, "googletagmanager")
	})

	t.Run("Result page against the demo catalog", func(t *testing.T) {
		// given
		sut := NewService(quizConfig, commerce.NewSeededFake(myuuid.RealUUIDer{}), consent.NewScriptInjector(consent.ScriptConfig{}))
		router := mux.NewRouter()
		require.NoError(t, sut.RegisterEndpoints(context.TODO(), router))

		// when
		response := doRequest(t, router, http.MethodPost, "/quiz", "application/x-www-form-urlencoded", url.Values{
			"answers[0]": {"3"},
			"answers[1]": {"3"},
			"answers[2]": {"3"},
			"answers[3]": {"3"},
			"answers[4]": {"3"},
		}.Encode())

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "We recommend the Cloud Sofa")
		assert.Contains(t, response.Body.String(), `href="/products/cloud-sofa"`)
	})

	t.Run("Incomplete form shows the error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/quiz", "application/x-www-form-urlencoded", url.Values{
			"answers[0]": {"3"},
		}.Encode())

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), "expected 5 answers, got 1")
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *commerce.MockClient) {
	c := context.TODO()
	client := commerce.NewMockClient(ctrl)
	injector := consent.NewScriptInjector(consent.ScriptConfig{AnalyticsID: "G-TEST", TagManagerID: "GTM-TEST"})

	sut := NewService(quizConfig, client, injector)
	router := mux.NewRouter()

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, client
}

func doRequest(t *testing.T, router *mux.Router, method string, path string, contentType string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
