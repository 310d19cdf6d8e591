package quiz

import (
	"context"

	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

type Config struct {
	CollectionHandle string
	PreferredProduct string
	Threshold        int
}

type service struct {
	config Config
	client commerce.Client
	logger mylog.Logger
}

func newService(config Config, client commerce.Client, logger mylog.Logger) *service {
	return &service{
		config: config,
		client: client,
		logger: logger,
	}
}

func (s *service) recommend(c context.Context, answers []int) (RecommendationResponse, error) {
	_, err := Score(answers)
	if err != nil {
		return RecommendationResponse{}, err
	}

	collection, err := s.client.GetCollectionByHandle(c, s.config.CollectionHandle, commerce.DefaultPageSize)
	if err != nil {
		return RecommendationResponse{}, err
	}

	score, product, err := Recommend(answers, collection.Products, s.config.PreferredProduct, s.config.Threshold)
	if err != nil {
		return RecommendationResponse{}, err
	}

	s.logger.Log(c, product.ID, mylog.SeverityInfo, "Quiz score %d recommends %s", score, product.Title)

	return RecommendationResponse{
		Score:   score,
		Product: product,
	}, nil
}
