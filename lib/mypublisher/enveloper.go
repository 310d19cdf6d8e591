package mypublisher

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/furniturestore/lib/myevents"
	"github.com/MarcGrol/furniturestore/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

// wrap derives the envelope uid from its content, so publishing the same event twice
// results in a single outbox entry.
func (e enveloper) wrap(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error marshalling payload of %s: %s", event.GetEventTypeName(), err)
	}

	return myevents.EventEnvelope{
		UID:           fingerprint(topic, event.GetEventTypeName(), event.GetAggregateName(), payload),
		CreatedAt:     e.nower.Now(),
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}, nil
}

func fingerprint(topic string, eventTypeName string, aggregateUID string, payload []byte) string {
	h := sha256.New()
	for _, part := range [][]byte{[]byte(topic), []byte(eventTypeName), []byte(aggregateUID), payload} {
		h.Write(part)
		h.Write([]byte{0})
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
