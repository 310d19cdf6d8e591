package quiz

import (
	"errors"
	"strings"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/services/commerce"
)

func Score(answers []int) (int, error) {
	if len(answers) != QuestionCount {
		return 0, myerrors.NewInvalidInputErrorf("expected %d answers, got %d", QuestionCount, len(answers))
	}
	score := 0
	for idx, answer := range answers {
		if answer < 0 || answer >= OptionCount {
			return 0, myerrors.NewInvalidInputErrorf("answer %d must be between 0 and %d, got %d", idx+1, OptionCount-1, answer)
		}
		score += answer
	}
	return score, nil
}

// Recommend picks the preferred product line for high scores and anything else for low
// scores. When nothing matches, the first available product wins, then the first product.
func Recommend(answers []int, products []commerce.Product, preferred string, threshold int) (int, commerce.Product, error) {
	score, err := Score(answers)
	if err != nil {
		return 0, commerce.Product{}, err
	}
	if len(products) == 0 {
		return score, commerce.Product{}, myerrors.NewNotFoundError(errors.New("No products to recommend"))
	}

	wantPreferred := score >= threshold
	for _, p := range products {
		if p.AvailableForSale && isPreferred(p, preferred) == wantPreferred {
			return score, p, nil
		}
	}
	for _, p := range products {
		if p.AvailableForSale {
			return score, p, nil
		}
	}
	return score, products[0], nil
}

func isPreferred(p commerce.Product, preferred string) bool {
	return preferred != "" && strings.Contains(strings.ToLower(p.Title), strings.ToLower(preferred))
}
