package myqueue

import (
	"context"
	"net/http"
	"time"

	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

type localTaskQueue struct {
	dispatcher *myhttp.LocalDispatcher
	logger     mylog.Logger
}

func newLocalQueue(dispatcher *myhttp.LocalDispatcher) *localTaskQueue {
	return &localTaskQueue{
		dispatcher: dispatcher,
		logger:     mylog.New("queue"),
	}
}

// Enqueue never blocks on the task: it is delivered to the local router in the background.
func (q *localTaskQueue) Enqueue(c context.Context, task Task) error {
	q.logger.Log(c, task.UID, mylog.SeverityDebug, "Dispatching task to %s", task.WebhookURLPath)

	if task.Delay > 0 {
		payload := task.Payload
		time.AfterFunc(task.Delay, func() {
			q.dispatcher.DispatchAsync(c, http.MethodPut, task.WebhookURLPath, payload)
		})
		return nil
	}

	q.dispatcher.DispatchAsync(c, http.MethodPut, task.WebhookURLPath, task.Payload)
	return nil
}
