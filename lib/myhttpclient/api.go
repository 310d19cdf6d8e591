package myhttpclient

import (
	"context"
)

//go:generate mockgen -source=api.go -package myhttpclient -destination httpclient_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, headers map[string]string, body []byte) (int, []byte, error)
}

// New returns a json http client; upstreamName names its circuit breaker and log lines.
func New(upstreamName string) HTTPSender {
	return newJSONHTTPClient(upstreamName, defaultTimeout)
}
