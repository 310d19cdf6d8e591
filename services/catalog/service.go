package catalog

import (
	"bytes"
	"context"

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

func (s *service) listProducts(c context.Context, first int) ([]ProductSummary, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch first %d products", first)

	products, err := s.client.ListProducts(c, first)
	if err != nil {
		return nil, err
	}
	return summarizeProducts(products), nil
}

func (s *service) getProductByID(c context.Context, id string) (ProductSummary, error) {
	s.logger.Log(c, id, mylog.SeverityInfo, "Fetch product %s", id)

	product, err := s.client.GetProductByID(c, id)
	if err != nil {
		return ProductSummary{}, err
	}
	return summarizeProduct(product), nil
}

func (s *service) getProductByHandle(c context.Context, handle string) (ProductSummary, error) {
	s.logger.Log(c, handle, mylog.SeverityInfo, "Fetch product with handle %s", handle)

	product, err := s.client.GetProductByHandle(c, handle)
	if err != nil {
		return ProductSummary{}, err
	}
	return summarizeProduct(product), nil
}

func (s *service) listCollections(c context.Context) ([]CollectionSummary, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch collections")

	collections, err := s.client.ListCollections(c, commerce.DefaultPageSize)
	if err != nil {
		return nil, err
	}

	result := make([]CollectionSummary, 0, len(collections))
	for _, col := range collections {
		result = append(result, summarizeCollection(col))
	}
	return result, nil
}

func (s *service) getCollection(c context.Context, handle string, firstProducts int) (CollectionResponse, error) {
	s.logger.Log(c, handle, mylog.SeverityInfo, "Fetch collection with handle %s", handle)

	col, err := s.client.GetCollectionByHandle(c, handle, firstProducts)
	if err != nil {
		return CollectionResponse{}, err
	}
	return CollectionResponse{
		Collection: summarizeCollection(col),
		Products:   summarizeProducts(col.Products),
	}, nil
}

func (s *service) buildFeed(c context.Context, baseURL string) ([]byte, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Build product feed")

	products, err := s.client.ListProducts(c, commerce.MaxPageSize)
	if err != nil {
		return nil, err
	}

	buf := bytes.Buffer{}
	err = writeFeed(&buf, products, baseURL)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) validateFeed(c context.Context, baseURL string) (FeedReport, error) {
	feed, err := s.buildFeed(c, baseURL)
	if err != nil {
		return FeedReport{}, err
	}

	report, err := validateFeed(bytes.NewReader(feed))
	if err != nil {
		return FeedReport{}, err
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Feed has %d items of which %d are valid", report.TotalItems, report.ValidItems)

	return report, nil
}
