package mypublisher

import (
	"context"

	"github.com/MarcGrol/furniturestore/lib/myevents"
)

// Publisher stores an event next to the business data of the running transaction; a
// queued trigger forwards it to Pub/Sub afterwards.
//
//go:generate mockgen -source=api.go -package mypublisher -destination publisher_mock.go Publisher
type Publisher interface {
	CreateTopic(c context.Context, topicName string) error
	Publish(c context.Context, topic string, event myevents.Event) error
}
