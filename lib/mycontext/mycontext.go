package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// CtxTraceContext is a context key for the trace context (used by mylog)
type CtxTraceContext struct{}

// CtxRequestID is a context key for the request id (used by mylog)
type CtxRequestID struct{}

func ContextFromHTTPRequest(r *http.Request) context.Context {
	var trace string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")

	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		trace = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	}

	ctx := context.WithValue(r.Context(), CtxTraceContext{}, trace)

	if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
		ctx = context.WithValue(ctx, CtxRequestID{}, requestID)
	}

	return ctx
}

// Detached keeps the trace and request id of c but drops its deadline and cancellation,
// for work that outlives the request that started it.
func Detached(c context.Context) context.Context {
	ctx := context.WithValue(context.Background(), CtxTraceContext{}, TraceFromContext(c))
	if requestID := RequestIDFromContext(c); requestID != "" {
		ctx = context.WithValue(ctx, CtxRequestID{}, requestID)
	}
	return ctx
}

func TraceFromContext(c context.Context) string {
	if c == nil {
		return ""
	}
	trace, _ := c.Value(CtxTraceContext{}).(string)
	return trace
}

func RequestIDFromContext(c context.Context) string {
	if c == nil {
		return ""
	}
	requestID, _ := c.Value(CtxRequestID{}).(string)
	return requestID
}
