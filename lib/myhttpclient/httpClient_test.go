package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
)

func TestSend(t *testing.T) {
	var gotHeaders http.Header
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	sut := newJSONHTTPClient("commerce", time.Second)

	status, body, err := sut.Send(context.TODO(), http.MethodPost, server.URL, map[string]string{"X-Shopify-Storefront-Access-Token": "secret"}, []byte(`{"query":"{}"}`))
	assert.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, `{"data":{}}`, string(body))
	assert.Equal(t, "secret", gotHeaders.Get("X-Shopify-Storefront-Access-Token"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, `{"query":"{}"}`, gotBody)
}

func TestSendUpstreamFailureIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`oops`))
	}))
	defer server.Close()

	sut := newJSONHTTPClient("marketing", time.Second)

	status, body, err := sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 502, status)
	assert.Equal(t, "oops", string(body))
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sut := newJSONHTTPClient("commerce", time.Second)

	for i := 0; i < 5; i++ {
		status, _, err := sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, 503, status)
	}

	_, _, err := sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	assert.Equal(t, 5, calls)
}

func TestCallerTimeoutsDoNotOpenBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	sut := newJSONHTTPClient("commerce", time.Second)

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, _, err := sut.Send(ctx, http.MethodGet, server.URL, nil, nil)
		cancel()
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}

	status, body, err := sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, `{}`, string(body))
}

func TestCancelledCallersDoNotOpenBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sut := newJSONHTTPClient("commerce", time.Second)

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := sut.Send(ctx, http.MethodGet, server.URL, nil, nil)
		assert.ErrorIs(t, err, context.Canceled)
	}

	status, _, err := sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 200, status)
}

func TestSendTransportError(t *testing.T) {
	sut := newJSONHTTPClient("commerce", 100*time.Millisecond)

	_, _, err := sut.Send(context.TODO(), http.MethodGet, "http://127.0.0.1:1", nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 500, myerrors.GetHTTPStatus(err))
}
