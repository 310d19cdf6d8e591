package myqueue

import (
	"context"
	"os"
	"time"

	"github.com/MarcGrol/furniturestore/lib/myhttp"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
	Delay          time.Duration
}

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
}

// New returns a Cloud Tasks queue on gcloud. Elsewhere tasks are dispatched in-process
// through the given dispatcher.
func New(c context.Context, dispatcher *myhttp.LocalDispatcher) (TaskQueuer, func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudQueue(c)
	}
	return newLocalQueue(dispatcher), func() {}, nil
}
