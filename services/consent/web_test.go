package consent

import (
	"context"
	"encoding/json"
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

	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
)

const visitorID = "f0e1d2c3-b4a5-4697-8899-aabbccddeeff"

type envelope struct {
	Success bool     `json:"success"`
	Decided bool     `json:"decided"`
	Consent *Consent `json:"consent"`
	Scripts []string `json:"scripts"`
}

func TestConsentService(t *testing.T) {

	t.Run("No cookie means no decision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/consent", "", "", nil)

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		assert.False(t, resp.Decided)
		assert.Nil(t, resp.Consent)
		assert.Equal(t, []string{scriptMonitoring}, resp.Scripts)
	})

	t.Run("Save consent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, uuider, publisher := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return(visitorID)
		publisher.EXPECT().Publish(gomock.Any(), TopicName, ConsentSaved{VisitorID: visitorID, Statistics: false, Marketing: true}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/consent", "application/json",
			`{"statistics":false,"marketing":true}`, nil)

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		assert.True(t, resp.Decided)
		require.NotNil(t, resp.Consent)
		assert.True(t, resp.Consent.Necessary)
		assert.True(t, resp.Consent.Marketing)
		assert.Contains(t, resp.Scripts, scriptMarketingOnsite)

		cookie := consentCookie(t, response)
		assert.Equal(t, int(CookieMaxAge.Seconds()), cookie.MaxAge)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		raw, err := url.QueryUnescape(cookie.Value)
		require.NoError(t, err)
		assert.Contains(t, raw, `"marketing":true`)

		record, found, err := storer.Get(ctx, visitorID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, record.Marketing)
		assert.False(t, record.Statistics)
	})

	t.Run("Saved cookie is read back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// given
		cookie := cookieFor(t, Consent{Necessary: false, Statistics: true, Marketing: false, Timestamp: mytime.ExampleTime})

		// when
		response := doRequest(t, router, http.MethodGet, "/api/consent", "", "", cookie)

		// then
		resp := decode(t, response)
		assert.True(t, resp.Decided)
		require.NotNil(t, resp.Consent)
		assert.True(t, resp.Consent.Necessary)
		assert.True(t, resp.Consent.Statistics)
		assert.Contains(t, resp.Scripts, scriptAnalytics)
		assert.NotContains(t, resp.Scripts, scriptMarketingPixel)
	})

	t.Run("Garbage cookie means no decision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/consent", "", "", &http.Cookie{Name: CookieName, Value: "%7Bnot-json"})

		// then
		assert.False(t, decode(t, response).Decided)
	})

	t.Run("Reject all keeps the visitor and overwrites the decision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, _, publisher := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), TopicName, ConsentSaved{VisitorID: visitorID}).Return(nil)
		cookie := cookieFor(t, Consent{Necessary: true, Statistics: true, Marketing: true})

		// when
		response := doRequest(t, router, http.MethodPost, "/api/consent/reject-all", "", "", cookie)

		// then
		assert.Equal(t, 200, response.Code)
		resp := decode(t, response)
		assert.False(t, resp.Consent.Statistics)
		assert.False(t, resp.Consent.Marketing)
		assert.True(t, mytime.ExampleTime.Equal(resp.Consent.Timestamp))

		record, _, _ := storer.Get(ctx, visitorID)
		assert.False(t, record.Marketing)
	})

	t.Run("Accept all from a form redirects back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider, publisher := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return(visitorID)
		publisher.EXPECT().Publish(gomock.Any(), TopicName, ConsentSaved{VisitorID: visitorID, Statistics: true, Marketing: true}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/consent/accept-all", "application/x-www-form-urlencoded",
			"returnTo=%2Fproducts%2Fcloud-sofa", nil)

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "/products/cloud-sofa", response.Header().Get("Location"))
		assert.NotNil(t, consentCookie(t, response))
	})

	t.Run("Settings form does not redirect off site", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider, publisher := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return(visitorID)
		publisher.EXPECT().Publish(gomock.Any(), TopicName, ConsentSaved{VisitorID: visitorID, Statistics: true}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/consent", "application/x-www-form-urlencoded",
			"statistics=true&returnTo=%2F%2Fevil.example.com", nil)

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "/", response.Header().Get("Location"))
	})

	t.Run("Settings page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// given
		cookie := cookieFor(t, Consent{Necessary: true, Marketing: true, Timestamp: mytime.ExampleTime})

		// when
		response := doRequest(t, router, http.MethodGet, "/consent?returnTo=/faq", "", "", cookie)

		// then
		assert.Equal(t, 200, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, `action="/api/consent"`)
		assert.Contains(t, body, "27 February 2023")
		assert.Contains(t, body, `value="/faq"`)
		assert.Equal(t, 1, strings.Count(body, `id="klaviyo-onsite"`))
	})
}

func cookieFor(t *testing.T, consent Consent) *http.Cookie {
	raw, err := json.Marshal(cookieValue{Consent: consent, VisitorID: visitorID})
	require.NoError(t, err)
	return &http.Cookie{Name: CookieName, Value: url.QueryEscape(string(raw))}
}

func consentCookie(t *testing.T, response *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range response.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	require.Fail(t, "consent cookie not set")
	return nil
}

func doRequest(t *testing.T, router *mux.Router, method string, url string, contentType string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request, err := http.NewRequest(method, url, reader)
	assert.NoError(t, err)
	request.Host = "localhost:8888"
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		request.AddCookie(cookie)
	}
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

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[ConsentRecord], *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, _ := mystore.New[ConsentRecord](c)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	sut := NewService(storer, publisher, nower, uuider, NewScriptInjector(allScripts))
	router := mux.NewRouter()

	// These are called by the following call to RegisterEndpoints()
	publisher.EXPECT().CreateTopic(c, TopicName).Return(nil)

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, nower, uuider, publisher
}
