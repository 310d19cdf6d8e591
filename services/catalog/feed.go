package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/furniturestore/services/commerce"
)

var feedHeader = []string{"id", "title", "description", "link", "image_link", "price", "availability", "brand"}

const (
	availabilityInStock    = "in stock"
	availabilityOutOfStock = "out of stock"
)

func writeFeed(w io.Writer, products []commerce.Product, baseURL string) error {
	writer := csv.NewWriter(w)

	err := writer.Write(feedHeader)
	if err != nil {
		return err
	}

	for _, p := range products {
		imageLink := ""
		if img := p.FirstImage(); img != nil {
			imageLink = img.URL
		}
		availability := availabilityOutOfStock
		if p.AvailableForSale {
			availability = availabilityInStock
		}
		price := ""
		if !p.Price().Amount.IsZero() || p.Price().CurrencyCode != "" {
			price = fmt.Sprintf("%s %s", p.Price().Amount.StringFixed(2), p.Price().CurrencyCode)
		}

		err := writer.Write([]string{
			commerce.NumericID(p.ID),
			p.Title,
			p.Description,
			fmt.Sprintf("%s/products/%s", baseURL, p.Handle),
			imageLink,
			price,
			availability,
			p.Vendor,
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// validateFeed parses a feed the way a shopping channel would and lists what it would reject.
func validateFeed(r io.Reader) (FeedReport, error) {
	report := FeedReport{Issues: []FeedIssue{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(feedHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return report, fmt.Errorf("error reading feed header: %s", err)
	}
	if strings.Join(header, ",") != strings.Join(feedHeader, ",") {
		return report, fmt.Errorf("unexpected feed header %v", header)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("error reading feed: %s", err)
		}

		report.TotalItems++
		issues := validateRecord(record)
		if len(issues) == 0 {
			report.ValidItems++
		}
		report.Issues = append(report.Issues, issues...)
	}

	return report, nil
}

func validateRecord(record []string) []FeedIssue {
	id := record[0]
	issues := []FeedIssue{}
	addIssue := func(field, problem string) {
		issues = append(issues, FeedIssue{ProductID: id, Field: field, Problem: problem})
	}

	for _, field := range []string{"title", "link", "image_link", "price"} {
		if record[columnOf(field)] == "" {
			addIssue(field, "missing")
		}
	}

	if price := record[columnOf("price")]; price != "" {
		parts := strings.Fields(price)
		if len(parts) != 2 {
			addIssue("price", "expected amount and currency")
		} else {
			amount, err := decimal.NewFromString(parts[0])
			if err != nil {
				addIssue("price", "not a number")
			} else if !amount.IsPositive() {
				addIssue("price", "must be positive")
			}
		}
	}

	switch record[columnOf("availability")] {
	case availabilityInStock, availabilityOutOfStock, "preorder":
	default:
		addIssue("availability", "unknown value")
	}

	return issues
}

func columnOf(name string) int {
	for i, h := range feedHeader {
		if h == name {
			return i
		}
	}
	return -1
}
