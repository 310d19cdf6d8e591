package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

type service struct {
	client commerce.Client
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(client commerce.Client, logger mylog.Logger) *service {
	return &service{
		client: client,
		logger: logger,
	}
}

func (s *service) create(c context.Context, lines []commerce.LineItem) (commerce.Checkout, error) {
	err := validateLineItems(lines)
	if err != nil {
		return commerce.Checkout{}, err
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Create checkout with %d lines", len(lines))

	return s.client.CreateCheckout(c, lines)
}

func (s *service) addLines(c context.Context, checkoutID string, lines []commerce.LineItem) (commerce.Checkout, error) {
	err := validateCheckoutID(checkoutID)
	if err != nil {
		return commerce.Checkout{}, err
	}
	if len(lines) == 0 {
		return commerce.Checkout{}, myerrors.NewInvalidInputError(errors.New("lineItems must not be empty"))
	}
	err = validateLineItems(lines)
	if err != nil {
		return commerce.Checkout{}, err
	}

	s.logger.Log(c, checkoutID, mylog.SeverityInfo, "Add %d lines to checkout %s", len(lines), checkoutID)

	return s.client.AddCheckoutLines(c, checkoutID, lines)
}

func (s *service) replaceLines(c context.Context, checkoutID string, lines []commerce.LineItem) (commerce.Checkout, error) {
	err := validateCheckoutID(checkoutID)
	if err != nil {
		return commerce.Checkout{}, err
	}
	err = validateLineItems(lines)
	if err != nil {
		return commerce.Checkout{}, err
	}

	s.logger.Log(c, checkoutID, mylog.SeverityInfo, "Replace lines of checkout %s with %d lines", checkoutID, len(lines))

	return s.client.ReplaceCheckoutLines(c, checkoutID, lines)
}

func (s *service) updateLines(c context.Context, checkoutID string, updates []commerce.LineUpdate) (commerce.Checkout, error) {
	err := validateCheckoutID(checkoutID)
	if err != nil {
		return commerce.Checkout{}, err
	}
	if len(updates) == 0 {
		return commerce.Checkout{}, myerrors.NewInvalidInputError(errors.New("lineItems must not be empty"))
	}
	for idx, u := range updates {
		if strings.TrimSpace(u.ID) == "" {
			return commerce.Checkout{}, myerrors.NewInvalidInputError(fmt.Errorf("lineItems[%d]: missing id", idx))
		}
		if u.Quantity < 1 {
			return commerce.Checkout{}, myerrors.NewInvalidInputError(fmt.Errorf("lineItems[%d]: quantity must be at least 1", idx))
		}
	}

	s.logger.Log(c, checkoutID, mylog.SeverityInfo, "Update %d lines of checkout %s", len(updates), checkoutID)

	return s.client.UpdateCheckoutLines(c, checkoutID, updates)
}

func (s *service) removeLines(c context.Context, checkoutID string, lineIDs []string) (commerce.Checkout, error) {
	err := validateCheckoutID(checkoutID)
	if err != nil {
		return commerce.Checkout{}, err
	}
	if len(lineIDs) == 0 {
		return commerce.Checkout{}, myerrors.NewInvalidInputError(errors.New("lineItemIds must not be empty"))
	}

	s.logger.Log(c, checkoutID, mylog.SeverityInfo, "Remove %d lines from checkout %s", len(lineIDs), checkoutID)

	return s.client.RemoveCheckoutLines(c, checkoutID, lineIDs)
}

func validateCheckoutID(checkoutID string) error {
	if strings.TrimSpace(checkoutID) == "" {
		return myerrors.NewInvalidInputError(errors.New("missing checkoutId"))
	}
	return nil
}

func validateLineItems(lines []commerce.LineItem) error {
	for idx, l := range lines {
		if strings.TrimSpace(l.VariantID) == "" {
			return myerrors.NewInvalidInputError(fmt.Errorf("lineItems[%d]: missing variantId", idx))
		}
		if l.Quantity < 1 {
			return myerrors.NewInvalidInputError(fmt.Errorf("lineItems[%d]: quantity must be at least 1", idx))
		}
	}
	return nil
}
