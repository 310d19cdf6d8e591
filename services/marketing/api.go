package marketing

import (
	"context"
	"time"
)

type Profile struct {
	Email     string
	FirstName string
	LastName  string
	Source    string
}

type Event struct {
	Email      string
	MetricName string
	Properties map[string]any
	Value      *float64
	UniqueID   string
	Time       time.Time
}

type ListInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client is the subset of the marketing-automation api the storefront uses.
//
//go:generate mockgen -source=api.go -package marketing -destination client_mock.go Client
type Client interface {
	UpsertProfile(c context.Context, profile Profile) error
	SubscribeToList(c context.Context, listID string, profile Profile) error
	CreateEvent(c context.Context, event Event) error
	GetList(c context.Context, listID string) (ListInfo, error)
}
