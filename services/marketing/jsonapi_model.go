package marketing

import "time"

type resource[T any] struct {
	Type          string         `json:"type"`
	ID            string         `json:"id,omitempty"`
	Attributes    T              `json:"attributes"`
	Relationships map[string]any `json:"relationships,omitempty"`
}

type document[T any] struct {
	Data T `json:"data"`
}

type profileAttributes struct {
	Email         string            `json:"email"`
	FirstName     string            `json:"first_name,omitempty"`
	LastName      string            `json:"last_name,omitempty"`
	Properties    map[string]any    `json:"properties,omitempty"`
	Subscriptions *subscriptionsAtt `json:"subscriptions,omitempty"`
}

type subscriptionsAtt struct {
	Email emailSubscription `json:"email"`
}

type emailSubscription struct {
	Marketing marketingConsent `json:"marketing"`
}

type marketingConsent struct {
	Consent string `json:"consent"`
}

type subscriptionJobAttributes struct {
	CustomSource string                                  `json:"custom_source,omitempty"`
	Profiles     document[[]resource[profileAttributes]] `json:"profiles"`
}

type metricAttributes struct {
	Name string `json:"name"`
}

type eventAttributes struct {
	Properties map[string]any                        `json:"properties"`
	Metric     document[resource[metricAttributes]]  `json:"metric"`
	Profile    document[resource[profileAttributes]] `json:"profile"`
	Time       *time.Time                            `json:"time,omitempty"`
	Value      *float64                              `json:"value,omitempty"`
	UniqueID   string                                `json:"unique_id,omitempty"`
}

type listAttributes struct {
	Name string `json:"name"`
}

type apiError struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Source any    `json:"source,omitempty"`
}

type errorDocument struct {
	Errors []apiError `json:"errors"`
}

type relationshipData struct {
	Data struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"data"`
}

func listRelationship(listID string) map[string]any {
	rel := relationshipData{}
	rel.Data.Type = "list"
	rel.Data.ID = listID
	return map[string]any{"list": rel}
}
