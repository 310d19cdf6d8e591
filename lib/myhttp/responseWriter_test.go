package myhttp

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

func TestResponseWriter(t *testing.T) {
	c := context.TODO()
	writer := NewWriter(mylog.New("test"))

	t.Run("Success envelope merges payload", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.Write(c, response, http.StatusOK, struct {
			Products []string `json:"products"`
		}{Products: []string{"sofa"}})

		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"success":true,"products":["sofa"]}`, response.Body.String())
	})

	t.Run("Success envelope with non-object payload", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.Write(c, response, http.StatusCreated, []int{1, 2})

		assert.Equal(t, 201, response.Code)
		assert.JSONEq(t, `{"success":true,"data":[1,2]}`, response.Body.String())
	})

	t.Run("Error envelope", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(c, response, myerrors.NewNotFoundError(fmt.Errorf("Collection not found")))

		assert.Equal(t, 404, response.Code)
		assert.JSONEq(t, `{"success":false,"error":"Collection not found"}`, response.Body.String())
	})

	t.Run("Error envelope with details", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(c, response, myerrors.NewUpstreamError(422, fmt.Errorf("rejected"), []string{"bad variant"}))

		assert.Equal(t, 422, response.Code)
		assert.JSONEq(t, `{"success":false,"error":"rejected","details":["bad variant"]}`, response.Body.String())
	})

	t.Run("Plain error becomes 500", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(c, response, fmt.Errorf("connection refused"))

		assert.Equal(t, 500, response.Code)
		assert.JSONEq(t, `{"success":false,"error":"connection refused"}`, response.Body.String())
	})

	t.Run("Html", func(t *testing.T) {
		response := httptest.NewRecorder()
		tmpl := template.Must(template.New("page").Parse(`<h1>{{.}}</h1>`))

		writer.WriteHTML(c, response, http.StatusNotFound, tmpl, "<Sofa>")

		assert.Equal(t, 404, response.Code)
		assert.Equal(t, "text/html; charset=utf-8", response.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>&lt;Sofa&gt;</h1>", response.Body.String())
	})
}

func TestDecodeJSON(t *testing.T) {
	dest := struct {
		Quantity int `json:"quantity"`
	}{}

	request, _ := http.NewRequest(http.MethodPut, "/", strings.NewReader(`{"quantity":3}`))
	assert.NoError(t, DecodeJSON(request, &dest))
	assert.Equal(t, 3, dest.Quantity)

	request, _ = http.NewRequest(http.MethodPut, "/", strings.NewReader(``))
	assert.NoError(t, DecodeJSON(request, &dest))

	request, _ = http.NewRequest(http.MethodPut, "/", strings.NewReader(`{"quantity":`))
	err := DecodeJSON(request, &dest)
	assert.Error(t, err)
	assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
}

func TestDecodeRequest(t *testing.T) {
	type subscription struct {
		Email     string `json:"email" form:"email"`
		FirstName string `json:"firstName" form:"firstName"`
	}

	t.Run("Form post", func(t *testing.T) {
		dest := subscription{}
		request, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader("email=jan%40example.com&firstName=Jan"))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		assert.NoError(t, DecodeRequest(request, &dest))
		assert.Equal(t, subscription{Email: "jan@example.com", FirstName: "Jan"}, dest)
	})

	t.Run("Json body", func(t *testing.T) {
		dest := subscription{}
		request, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"jan@example.com"}`))
		request.Header.Set("Content-Type", "application/json")

		assert.NoError(t, DecodeRequest(request, &dest))
		assert.Equal(t, "jan@example.com", dest.Email)
	})
}

func TestSafeReturnPath(t *testing.T) {
	assert.Equal(t, "/products/cloud-sofa", SafeReturnPath("/products/cloud-sofa"))
	assert.Equal(t, "/", SafeReturnPath(""))
	assert.Equal(t, "/", SafeReturnPath("https://evil.example.com"))
	assert.Equal(t, "/", SafeReturnPath("//evil.example.com"))
	assert.Equal(t, "/", SafeReturnPath("/\\evil.example.com"))
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "/api/klaviyo/event", LocalPath("http://localhost:8080/api/klaviyo/event"))
	assert.Equal(t, "/a?b=c", LocalPath("https://shop.example.com/a?b=c"))
	assert.Equal(t, "/already/local", LocalPath("/already/local"))
}

func TestLocalDispatcher(t *testing.T) {
	router := mux.NewRouter()
	received := make(chan string, 1)
	router.HandleFunc("/api/cart/{cartUID}/sync", func(w http.ResponseWriter, r *http.Request) {
		received <- mux.Vars(r)["cartUID"]
		w.WriteHeader(http.StatusAccepted)
	}).Methods("PUT")

	dispatcher := NewLocalDispatcher()

	_, _, err := dispatcher.Dispatch(context.TODO(), http.MethodPut, "/api/cart/123/sync", nil)
	assert.Error(t, err)

	dispatcher.SetHandler(router)

	status, _, err := dispatcher.Dispatch(context.TODO(), http.MethodPut, "/api/cart/123/sync", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, "123", <-received)

	dispatcher.DispatchAsync(context.TODO(), http.MethodPut, "/api/cart/456/sync", nil)
	dispatcher.Wait()
	assert.Equal(t, "456", <-received)
}
