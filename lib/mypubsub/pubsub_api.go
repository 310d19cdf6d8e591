package mypubsub

import (
	"context"
	"os"

	"github.com/MarcGrol/furniturestore/lib/myhttp"
)

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
	Subscribe(c context.Context, topic string, urlToPostTo string) error
}

// New returns Google Pub/Sub on gcloud. Elsewhere messages are pushed in-process to the
// subscribed endpoints through the given dispatcher.
func New(c context.Context, dispatcher *myhttp.LocalDispatcher) (PubSub, func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudPubSub(c)
	}
	return newLocalPubSub(dispatcher), func() {}, nil
}
