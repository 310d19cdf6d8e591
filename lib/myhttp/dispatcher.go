package myhttp

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

// LocalDispatcher delivers requests straight into this process's own router. It stands in
// for Cloud Tasks and Pub/Sub push delivery when running outside Google Cloud.
type LocalDispatcher struct {
	sync.RWMutex
	handler http.Handler
	logger  mylog.Logger
	wg      sync.WaitGroup
}

func NewLocalDispatcher() *LocalDispatcher {
	return &LocalDispatcher{
		logger: mylog.New("dispatcher"),
	}
}

// SetHandler binds the router once all endpoints have been registered.
func (d *LocalDispatcher) SetHandler(handler http.Handler) {
	d.Lock()
	defer d.Unlock()
	d.handler = handler
}

func (d *LocalDispatcher) Dispatch(c context.Context, method string, path string, body []byte) (int, []byte, error) {
	d.RLock()
	handler := d.handler
	d.RUnlock()

	if handler == nil {
		return 0, nil, fmt.Errorf("no handler bound to dispatch %s %s", method, path)
	}

	req, err := http.NewRequestWithContext(c, method, path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request %s %s: %s", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID := mycontext.RequestIDFromContext(c); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	rec := newRecorder()
	handler.ServeHTTP(rec, req)

	return rec.status, rec.body.Bytes(), nil
}

// DispatchAsync fires the request in the background; the outcome is only logged.
func (d *LocalDispatcher) DispatchAsync(c context.Context, method string, path string, body []byte) {
	ctx := mycontext.Detached(c)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		status, _, err := d.Dispatch(ctx, method, path, body)
		if err != nil {
			d.logger.Log(ctx, "", mylog.SeverityError, "Error dispatching %s %s: %s", method, path, err)
			return
		}
		if status >= 300 {
			d.logger.Log(ctx, "", mylog.SeverityWarn, "Dispatched %s %s -> %d", method, path, status)
		}
	}()
}

// Wait blocks until all background dispatches have completed.
func (d *LocalDispatcher) Wait() {
	d.wg.Wait()
}

type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{
		header: http.Header{},
		status: http.StatusOK,
	}
}

func (r *recorder) Header() http.Header {
	return r.header
}

func (r *recorder) Write(b []byte) (int, error) {
	return r.body.Write(b)
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
}
