package warmup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestWarmup(t *testing.T) {
	router := mux.NewRouter()
	err := NewService().RegisterEndpoints(context.TODO(), router)
	assert.NoError(t, err)

	testCases := []struct {
		path     string
		expected string
	}{
		{path: "/_ah/warmup", expected: `{"success":true,"message":"Successfully processed warmup request"}`},
		{path: "/healthz", expected: `{"success":true,"message":"ok"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			// when
			request, err := http.NewRequest(http.MethodGet, tc.path, nil)
			assert.NoError(t, err)
			response := httptest.NewRecorder()
			router.ServeHTTP(response, request)

			// then
			assert.Equal(t, 200, response.Code)
			assert.JSONEq(t, tc.expected, response.Body.String())
		})
	}
}
