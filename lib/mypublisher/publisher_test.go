package mypublisher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/furniturestore/lib/myevents"
	"github.com/MarcGrol/furniturestore/lib/mypubsub"
	"github.com/MarcGrol/furniturestore/lib/myqueue"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/mytime"
)

type sofaOrdered struct {
	OrderUID string
}

func (e sofaOrdered) GetEventTypeName() string {
	return "orders.sofaOrdered"
}

func (e sofaOrdered) GetAggregateName() string {
	return e.OrderUID
}

func TestTransactionalPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	outbox, _, _ := mystore.NewInMemoryStore[myevents.EventEnvelope](c)
	pubsub := mypubsub.NewMockPubSub(ctrl)
	queue := myqueue.NewMockTaskQueuer(ctrl)
	nower := mytime.NewMockNower(ctrl)

	sut := newTransactionalPublisher(outbox, pubsub, queue, nower)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	var enqueued myqueue.Task

	t.Run("Publish stores envelope and enqueues trigger", func(t *testing.T) {
		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, task myqueue.Task) error {
			enqueued = task
			return nil
		})

		// when
		err := sut.Publish(c, "orders", sofaOrdered{OrderUID: "order-1"})

		// then
		assert.NoError(t, err)
		assert.Len(t, outbox.Items, 1)
		envelope := outbox.Items[enqueued.UID]
		assert.Equal(t, "orders.sofaOrdered", envelope.EventTypeName)
		assert.Equal(t, "order-1", envelope.AggregateUID)
		assert.False(t, envelope.Published)
		assert.Equal(t, "/pubsub/orders/"+enqueued.UID, enqueued.WebhookURLPath)
	})

	t.Run("Different aggregate gets its own envelope", func(t *testing.T) {
		// then
		assert.NotEqual(t,
			fingerprint("orders", "orders.sofaOrdered", "order-1", []byte(`{"OrderUID":"order-1"}`)),
			fingerprint("orders", "orders.sofaOrdered", "order-2", []byte(`{"OrderUID":"order-2"}`)))
	})

	t.Run("Same event is stored once", func(t *testing.T) {
		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

		// when
		err := sut.Publish(c, "orders", sofaOrdered{OrderUID: "order-1"})

		// then
		assert.NoError(t, err)
		assert.Len(t, outbox.Items, 1)
	})

	t.Run("Trigger publishes pending envelopes", func(t *testing.T) {
		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(time.Minute))
		pubsub.EXPECT().Publish(gomock.Any(), "orders", gomock.Any()).Return(nil)
		request, _ := http.NewRequest(http.MethodPut, enqueued.WebhookURLPath, nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Successfully published 1 events")
		published := outbox.Items[enqueued.UID]
		assert.True(t, published.Published)
		assert.True(t, mytime.ExampleTime.Add(time.Minute).Equal(published.PublishedAt))
	})

	t.Run("Trigger is idempotent", func(t *testing.T) {
		// given
		request, _ := http.NewRequest(http.MethodPut, enqueued.WebhookURLPath, nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Successfully published 0 events")
	})
}
