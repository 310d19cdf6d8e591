package mypublisher

import (
	"encoding/json"

	"github.com/MarcGrol/furniturestore/lib/myevents"
	"github.com/MarcGrol/furniturestore/lib/mytime"
)

// CreatePubsubMessage builds the body Pub/Sub would push for the given event.
func CreatePubsubMessage(topic string, event myevents.Event) string {
	eventBytes, _ := json.Marshal(event)
	envelope := myevents.EventEnvelope{
		UID:           "123",
		CreatedAt:     mytime.ExampleTime,
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(eventBytes),
	}

	req, _ := myevents.NewPushRequest(topic, envelope)
	reqBytes, _ := json.Marshal(req)

	return string(reqBytes)
}
