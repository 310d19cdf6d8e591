package cartevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myevents"
)

const (
	TopicName          = "cart"
	cartCheckedOutName = TopicName + ".checkedOut"
)

type CartEventService interface {
	OnCartCheckedOut(c context.Context, topic string, event CartCheckedOut) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CartEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case cartCheckedOutName:
		{
			event := CartCheckedOut{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartCheckedOut(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unsupported event %s", envelope.EventTypeName))
	}
}

// CartCheckedOut is published when a visitor is handed over to the hosted checkout.
type CartCheckedOut struct {
	CartUID      string
	CheckoutID   string
	WebURL       string
	Email        string
	ItemCount    int
	TotalPrice   string
	CurrencyCode string
	ProductNames []string
}

func (e CartCheckedOut) GetEventTypeName() string {
	return cartCheckedOutName
}

func (e CartCheckedOut) GetAggregateName() string {
	return e.CartUID
}
