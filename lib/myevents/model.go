package myevents

import "time"

// EventEnvelope is how an event travels through the outbox and over Pub/Sub.
type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string `datastore:",noindex"`
	Published     bool
	PublishedAt   time.Time `datastore:",noindex"`
}

func (e EventEnvelope) String() string {
	return e.EventTypeName + "." + e.AggregateUID
}

type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}
