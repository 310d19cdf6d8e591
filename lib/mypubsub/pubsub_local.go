package mypubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/MarcGrol/furniturestore/lib/myevents"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

type localPubSub struct {
	sync.RWMutex
	dispatcher    *myhttp.LocalDispatcher
	subscriptions map[string][]string
	logger        mylog.Logger
}

func newLocalPubSub(dispatcher *myhttp.LocalDispatcher) *localPubSub {
	return &localPubSub{
		dispatcher:    dispatcher,
		subscriptions: map[string][]string{},
		logger:        mylog.New("pubsub"),
	}
}

func (ps *localPubSub) CreateTopic(c context.Context, topicName string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, found := ps.subscriptions[topicName]; !found {
		ps.subscriptions[topicName] = []string{}
	}
	return nil
}

func (ps *localPubSub) Subscribe(c context.Context, topicName string, urlToPostTo string) error {
	ps.Lock()
	defer ps.Unlock()

	path := myhttp.LocalPath(urlToPostTo)
	for _, existing := range ps.subscriptions[topicName] {
		if existing == path {
			return nil
		}
	}
	ps.subscriptions[topicName] = append(ps.subscriptions[topicName], path)

	ps.logger.Log(c, topicName, mylog.SeverityInfo, "Subscribed %s to topic %s", path, topicName)

	return nil
}

func (ps *localPubSub) Publish(c context.Context, topicName string, data string) error {
	ps.RLock()
	paths := append([]string{}, ps.subscriptions[topicName]...)
	ps.RUnlock()

	for _, path := range paths {
		body, err := json.Marshal(myevents.PushRequest{
			Message:      myevents.PushMessage{Data: []byte(data)},
			Subscription: topicName,
		})
		if err != nil {
			return fmt.Errorf("error marshalling push-request for topic %s: %s", topicName, err)
		}
		ps.dispatcher.DispatchAsync(c, http.MethodPost, path, body)
	}

	return nil
}
