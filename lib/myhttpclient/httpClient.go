package myhttpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

const (
	defaultTimeout      = 10 * time.Second
	maxResponseBodySize = 10 << 20
)

var debug = os.Getenv("HTTP_DEBUG") != ""

type response struct {
	status int
	body   []byte
}

type jsonHTTPClient struct {
	upstreamName string
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker[response]
	logger       mylog.Logger
}

func newJSONHTTPClient(upstreamName string, timeout time.Duration) *jsonHTTPClient {
	return &jsonHTTPClient{
		upstreamName: upstreamName,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
			Name:    upstreamName,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// A caller that gave up says nothing about the health of the upstream
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
			},
		}),
		logger: mylog.New("httpclient"),
	}
}

// errUpstreamFailure marks a 5xx response so the breaker counts it; the response itself
// is still handed back to the caller.
var errUpstreamFailure = errors.New("upstream failure")

func (c jsonHTTPClient) Send(ctx context.Context, method string, url string, headers map[string]string, body []byte) (int, []byte, error) {
	resp, err := c.breaker.Execute(func() (response, error) {
		resp, err := c.do(ctx, method, url, headers, body)
		if err != nil && ctx.Err() != nil {
			return resp, fmt.Errorf("%s: %w", err, ctx.Err())
		}
		if err != nil {
			return resp, err
		}
		if resp.status >= http.StatusInternalServerError {
			return resp, errUpstreamFailure
		}
		return resp, nil
	})
	if errors.Is(err, errUpstreamFailure) {
		return resp.status, resp.body, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, []byte{}, myerrors.NewUnavailableError(fmt.Errorf("%s is unavailable: %s", c.upstreamName, err))
	}
	if err != nil {
		return 0, []byte{}, err
	}

	return resp.status, resp.body, nil
}

func (c jsonHTTPClient) do(ctx context.Context, method string, url string, headers map[string]string, body []byte) (response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return response{}, fmt.Errorf("error creating http request for %s %s: %s", method, url, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	if debug {
		reqDump, err := httputil.DumpRequestOut(httpReq, true)
		if err == nil {
			fmt.Printf("HTTP-req:\n%s", string(reqDump))
		}
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return response{}, fmt.Errorf("error sending %s %s: %s", method, url, err)
	}
	defer httpResp.Body.Close()

	if debug {
		respDump, err := httputil.DumpResponse(httpResp, true)
		if err == nil {
			fmt.Printf("HTTP-resp:\n%s", string(respDump))
		}
	}

	respPayload, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBodySize))
	if err != nil {
		return response{}, fmt.Errorf("error reading response %s %s: %s", method, url, err)
	}

	c.logger.Log(ctx, c.upstreamName, mylog.SeverityDebug, "HTTP call: %s %s -> %d (%s)", method, url, httpResp.StatusCode, time.Since(start))

	return response{status: httpResp.StatusCode, body: respPayload}, nil
}
