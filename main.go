package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MarcGrol/furniturestore/lib/myconfig"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/myhttpclient"
	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/mypubsub"
	"github.com/MarcGrol/furniturestore/lib/myqueue"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
	"github.com/MarcGrol/furniturestore/services/cart"
	"github.com/MarcGrol/furniturestore/services/catalog"
	"github.com/MarcGrol/furniturestore/services/checkout"
	"github.com/MarcGrol/furniturestore/services/commerce"
	"github.com/MarcGrol/furniturestore/services/consent"
	"github.com/MarcGrol/furniturestore/services/marketing"
	"github.com/MarcGrol/furniturestore/services/pages"
	"github.com/MarcGrol/furniturestore/services/quiz"
	"github.com/MarcGrol/furniturestore/services/warmup"
)

type endpointRegistrar interface {
	RegisterEndpoints(c context.Context, router *mux.Router) error
}

func main() {
	c := context.Background()

	cfg, err := myconfig.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}

	router := mux.NewRouter()
	// Checkout ids are global ids containing slashes
	router.UseEncodedPath()

	// Queued tasks and pushed events are delivered to our own router when running locally
	dispatcher := myhttp.NewLocalDispatcher()

	queue, queueCleanup, err := myqueue.New(c, dispatcher)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c, dispatcher)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, mytime.RealNower{})
	if err != nil {
		log.Fatalf("Error creating event publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	cartStore, cartStoreCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()

	consentStore, consentStoreCleanup, err := mystore.New[consent.ConsentRecord](c)
	if err != nil {
		log.Fatalf("Error creating consent store: %s", err)
	}
	defer consentStoreCleanup()

	commerceClient := newCommerceClient(cfg)
	marketingClient := marketing.NewKlaviyoClient(cfg.MarketingBaseURL, cfg.MarketingAPIKey, cfg.MarketingAPIRevision, myhttpclient.New("klaviyo"))
	injector := consent.NewScriptInjector(consent.ScriptConfig{
		AnalyticsID:         cfg.AnalyticsID,
		TagManagerID:        cfg.TagManagerID,
		MarketingPixelID:    cfg.MarketingPixelID,
		MarketingPublicKey:  cfg.MarketingPublicKey,
		MonitoringScriptURL: cfg.MonitoringScriptURL,
	})

	cartService := cart.NewService(cartStore, commerceClient, queue, publisher, mytime.RealNower{}, myuuid.RealUUIDer{})

	services := []endpointRegistrar{
		warmup.NewService(),
		catalog.NewService(commerceClient),
		checkout.NewService(commerceClient),
		cartService,
		consent.NewService(consentStore, publisher, mytime.RealNower{}, myuuid.RealUUIDer{}, injector),
		marketing.NewService(marketing.Config{
			APIKey:    cfg.MarketingAPIKey,
			PublicKey: cfg.MarketingPublicKey,
			ListID:    cfg.MarketingListID,
		}, marketingClient, pubsub, publisher, mytime.RealNower{}),
		quiz.NewService(quiz.Config{
			CollectionHandle: cfg.QuizCollectionHandle,
			PreferredProduct: cfg.QuizPreferredProduct,
			Threshold:        cfg.QuizThreshold,
		}, commerceClient, injector),
		pages.NewService(commerceClient, cartService, injector),
	}
	for _, s := range services {
		err = s.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering endpoints: %s", err)
		}
	}

	dispatcher.SetHandler(router)

	startWebServerBlocking(cfg, otelhttp.NewHandler(router, "furniturestore"))

	dispatcher.Wait()
}

func newCommerceClient(cfg myconfig.Config) commerce.Client {
	if cfg.Offline() {
		log.Printf("No commerce store configured: using the demo catalog")
		return commerce.NewSeededFake(myuuid.RealUUIDer{})
	}
	return commerce.NewGraphQLClient(cfg.CommerceDomain, cfg.CommerceAccessToken, cfg.CommerceAPIVersion, myhttpclient.New("commerce"))
}

func startWebServerBlocking(cfg myconfig.Config, handler http.Handler) {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Printf("Shutting down webserver")
		c, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := server.Shutdown(c)
		if err != nil {
			log.Printf("Error shutting down webserver: %s", err)
		}
	}()

	log.Printf("Starting webserver (%s) on port %s (try http://localhost:%s)", cfg.Environment, cfg.Port, cfg.Port)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Error starting webserver on port %s: %s", cfg.Port, err)
	}
	<-stopped
}
