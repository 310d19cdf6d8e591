package marketing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/mypubsub"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/services/cart/cartevents"
)

type webService struct {
	service    *service
	subscriber mypubsub.PubSub
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(config Config, client Client, subscriber mypubsub.PubSub, pub mypublisher.Publisher, nower mytime.Nower) *webService {
	logger := mylog.New("marketing")
	return &webService{
		logger:     logger,
		subscriber: subscriber,
		service:    newService(config, client, pub, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/klaviyo/subscribe", s.subscribe()).Methods("POST")
	router.HandleFunc("/api/klaviyo/track", s.track()).Methods("POST")
	router.HandleFunc("/api/klaviyo/track-review", s.trackReview()).Methods("POST")
	router.HandleFunc("/api/klaviyo/send-discount-email", s.sendDiscountEmail()).Methods("POST")
	router.HandleFunc("/api/klaviyo/debug", s.debug()).Methods("GET")
	router.HandleFunc("/api/klaviyo/event", s.handleEvent()).Methods("POST")

	return s.Subscribe(c)
}

func (s *webService) Subscribe(c context.Context) error {
	err := s.service.publisher.CreateTopic(c, TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", TopicName, err)
	}

	err = s.subscriber.CreateTopic(c, cartevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", cartevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, cartevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/klaviyo/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", cartevents.TopicName, err)
	}

	return nil
}

func (s *webService) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := SubscribeRequest{}
		err := myhttp.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		err = s.service.subscribe(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		if myhttp.IsFormPost(r) {
			http.Redirect(w, r, myhttp.SafeReturnPath(req.ReturnTo), http.StatusSeeOther)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully subscribed",
		})
	}
}

func (s *webService) track() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := TrackRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		err = s.service.track(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Event tracked",
		})
	}
}

func (s *webService) trackReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := TrackReviewRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		err = s.service.trackReview(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Review tracked",
		})
	}
}

func (s *webService) sendDiscountEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := DiscountEmailRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		err = s.service.sendDiscountEmail(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Discount email requested",
		})
	}
}

func (s *webService) debug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, s.service.debug(c))
	}
}

func (s *webService) handleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := cartevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}
