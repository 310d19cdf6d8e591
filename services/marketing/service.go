package marketing

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/services/cart/cartevents"
)

const (
	defaultSource       = "storefront"
	discountSource      = "discount-popup"
	defaultDiscountCode = "WELCOME10"
	metricReview        = "Submitted Review"
	metricDiscount      = "Requested Discount"
	metricStartCheckout = "Started Checkout"
)

type service struct {
	config    Config
	client    Client
	publisher mypublisher.Publisher
	nower     mytime.Nower
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(config Config, client Client, pub mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		config:    config,
		client:    client,
		publisher: pub,
		nower:     nower,
		logger:    logger,
	}
}

func (s *service) checkConfigured() error {
	if !s.config.configured() {
		return myerrors.NewUnavailableError(errors.New("email marketing is not configured"))
	}
	return nil
}

func (s *service) subscribe(c context.Context, req SubscribeRequest) error {
	err := s.checkConfigured()
	if err != nil {
		return err
	}
	email, err := validEmail(req.Email)
	if err != nil {
		return err
	}
	listID := req.ListID
	if listID == "" {
		listID = s.config.ListID
	}
	if listID == "" {
		return myerrors.NewUnavailableError(errors.New("no mailing list configured"))
	}
	source := req.Source
	if source == "" {
		source = defaultSource
	}

	s.logger.Log(c, email, mylog.SeverityInfo, "Subscribe %s to list %s (source %s)", email, listID, source)

	profile := Profile{
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Source:    source,
	}
	err = s.client.UpsertProfile(c, profile)
	if err != nil {
		return err
	}
	err = s.client.SubscribeToList(c, listID, profile)
	if err != nil {
		return err
	}

	err = s.publisher.Publish(c, TopicName, ProfileSubscribed{
		Email:  email,
		ListID: listID,
		Source: source,
	})
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

func (s *service) track(c context.Context, req TrackRequest) error {
	err := s.checkConfigured()
	if err != nil {
		return err
	}
	email, err := validEmail(req.Email)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.Event) == "" {
		return myerrors.NewInvalidInputError(errors.New("missing event name"))
	}

	s.logger.Log(c, email, mylog.SeverityInfo, "Track event %s for %s", req.Event, email)

	return s.client.CreateEvent(c, Event{
		Email:      email,
		MetricName: req.Event,
		Properties: req.Properties,
		Time:       s.nower.Now(),
	})
}

func (s *service) trackReview(c context.Context, req TrackReviewRequest) error {
	err := s.checkConfigured()
	if err != nil {
		return err
	}
	email, err := validEmail(req.Email)
	if err != nil {
		return err
	}
	if req.ProductID == "" {
		return myerrors.NewInvalidInputError(errors.New("missing productId"))
	}
	if req.Rating < 1 || req.Rating > 5 {
		return myerrors.NewInvalidInputError(fmt.Errorf("rating must be between 1 and 5, got %d", req.Rating))
	}

	s.logger.Log(c, email, mylog.SeverityInfo, "Track review of product %s by %s", req.ProductID, email)

	return s.client.CreateEvent(c, Event{
		Email:      email,
		MetricName: metricReview,
		Properties: map[string]any{
			"ProductID":   req.ProductID,
			"ProductName": req.ProductName,
			"Rating":      req.Rating,
			"Review":      req.Review,
		},
		Time: s.nower.Now(),
	})
}

// sendDiscountEmail only records the request; a flow in the marketing tool sends the email.
func (s *service) sendDiscountEmail(c context.Context, req DiscountEmailRequest) error {
	err := s.subscribe(c, SubscribeRequest{
		Email:  req.Email,
		Source: discountSource,
	})
	if err != nil {
		return err
	}

	code := req.DiscountCode
	if code == "" {
		code = defaultDiscountCode
	}

	return s.client.CreateEvent(c, Event{
		Email:      strings.TrimSpace(req.Email),
		MetricName: metricDiscount,
		Properties: map[string]any{
			"DiscountCode": code,
		},
		Time: s.nower.Now(),
	})
}

func (s *service) debug(c context.Context) DebugResponse {
	resp := DebugResponse{
		PrivateKeyConfigured: s.config.APIKey != "",
		PublicKeyConfigured:  s.config.PublicKey != "",
		ListID:               s.config.ListID,
	}
	if !s.config.configured() || s.config.ListID == "" {
		return resp
	}

	resp.ListLookup.Attempted = true
	list, err := s.client.GetList(c, s.config.ListID)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error looking up list %s: %s", s.config.ListID, err)
		resp.ListLookup.Error = myerrors.GetMessage(err)
		return resp
	}
	resp.ListLookup.OK = true
	resp.ListLookup.List = &list
	return resp
}

func (s *service) OnCartCheckedOut(c context.Context, topic string, event cartevents.CartCheckedOut) error {
	if event.Email == "" || !s.config.configured() {
		s.logger.Log(c, event.CartUID, mylog.SeverityDebug, "Ignore checkout of cart %s", event.CartUID)
		return nil
	}

	s.logger.Log(c, event.CartUID, mylog.SeverityInfo, "Track started checkout of cart %s for %s", event.CartUID, event.Email)

	properties := map[string]any{
		"CheckoutURL": event.WebURL,
		"ItemNames":   event.ProductNames,
		"ItemCount":   event.ItemCount,
		"Currency":    event.CurrencyCode,
	}
	var value *float64
	if total, err := decimal.NewFromString(event.TotalPrice); err == nil {
		f, _ := total.Float64()
		value = &f
	}

	return s.client.CreateEvent(c, Event{
		Email:      event.Email,
		MetricName: metricStartCheckout,
		Properties: properties,
		Value:      value,
		UniqueID:   event.CheckoutID,
		Time:       s.nower.Now(),
	})
}

func validEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", myerrors.NewInvalidInputError(errors.New("missing email"))
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", myerrors.NewInvalidInputError(fmt.Errorf("invalid email %q", email))
	}
	return email, nil
}
