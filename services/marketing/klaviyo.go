package marketing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myhttpclient"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

const jsonAPIContentType = "application/vnd.api+json"

type klaviyoClient struct {
	baseURL  string
	apiKey   string
	revision string
	sender   myhttpclient.HTTPSender
	logger   mylog.Logger
}

func NewKlaviyoClient(baseURL string, apiKey string, revision string, sender myhttpclient.HTTPSender) Client {
	return &klaviyoClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		revision: revision,
		sender:   sender,
		logger:   mylog.New("klaviyo"),
	}
}

func (kc *klaviyoClient) UpsertProfile(c context.Context, profile Profile) error {
	attributes := profileAttributes{
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	}
	if profile.Source != "" {
		attributes.Properties = map[string]any{"source": profile.Source}
	}

	return kc.do(c, http.MethodPost, "/api/profile-import/", document[resource[profileAttributes]]{
		Data: resource[profileAttributes]{
			Type:       "profile",
			Attributes: attributes,
		},
	}, nil)
}

func (kc *klaviyoClient) SubscribeToList(c context.Context, listID string, profile Profile) error {
	return kc.do(c, http.MethodPost, "/api/profile-subscription-bulk-create-jobs/", document[resource[subscriptionJobAttributes]]{
		Data: resource[subscriptionJobAttributes]{
			Type: "profile-subscription-bulk-create-job",
			Attributes: subscriptionJobAttributes{
				CustomSource: profile.Source,
				Profiles: document[[]resource[profileAttributes]]{
					Data: []resource[profileAttributes]{{
						Type: "profile",
						Attributes: profileAttributes{
							Email: profile.Email,
							Subscriptions: &subscriptionsAtt{
								Email: emailSubscription{Marketing: marketingConsent{Consent: "SUBSCRIBED"}},
							},
						},
					}},
				},
			},
			Relationships: listRelationship(listID),
		},
	}, nil)
}

func (kc *klaviyoClient) CreateEvent(c context.Context, event Event) error {
	properties := event.Properties
	if properties == nil {
		properties = map[string]any{}
	}
	attributes := eventAttributes{
		Properties: properties,
		Metric: document[resource[metricAttributes]]{
			Data: resource[metricAttributes]{Type: "metric", Attributes: metricAttributes{Name: event.MetricName}},
		},
		Profile: document[resource[profileAttributes]]{
			Data: resource[profileAttributes]{Type: "profile", Attributes: profileAttributes{Email: event.Email}},
		},
		Value:    event.Value,
		UniqueID: event.UniqueID,
	}
	if !event.Time.IsZero() {
		t := event.Time
		attributes.Time = &t
	}

	return kc.do(c, http.MethodPost, "/api/events/", document[resource[eventAttributes]]{
		Data: resource[eventAttributes]{Type: "event", Attributes: attributes},
	}, nil)
}

func (kc *klaviyoClient) GetList(c context.Context, listID string) (ListInfo, error) {
	resp := document[resource[listAttributes]]{}
	err := kc.do(c, http.MethodGet, fmt.Sprintf("/api/lists/%s/", listID), nil, &resp)
	if err != nil {
		return ListInfo{}, err
	}
	return ListInfo{
		ID:   resp.Data.ID,
		Name: resp.Data.Attributes.Name,
	}, nil
}

func (kc *klaviyoClient) do(c context.Context, method string, path string, request any, response any) error {
	var body []byte
	if request != nil {
		var err error
		body, err = json.Marshal(request)
		if err != nil {
			return fmt.Errorf("error marshalling %s request: %s", path, err)
		}
	}

	status, respBody, err := kc.sender.Send(c, method, kc.baseURL+path, map[string]string{
		"Authorization": "Klaviyo-API-Key " + kc.apiKey,
		"revision":      kc.revision,
		"Content-Type":  jsonAPIContentType,
		"Accept":        jsonAPIContentType,
	}, body)
	if err != nil {
		return err
	}

	if status < 200 || status >= 300 {
		return upstreamError(status, respBody)
	}

	if response == nil || len(respBody) == 0 {
		return nil
	}
	err = json.Unmarshal(respBody, response)
	if err != nil {
		return myerrors.NewUpstreamError(http.StatusBadGateway, fmt.Errorf("error parsing %s response: %s", path, err), nil)
	}
	return nil
}

func upstreamError(status int, body []byte) error {
	doc := errorDocument{}
	if json.Unmarshal(body, &doc) == nil && len(doc.Errors) > 0 {
		first := doc.Errors[0]
		message := first.Detail
		if message == "" {
			message = first.Title
		}
		return myerrors.NewUpstreamError(status, errors.New(message), doc.Errors)
	}
	return myerrors.NewUpstreamError(status, fmt.Errorf("marketing api returned http %d", status), nil)
}
