package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myhttpclient"
	"github.com/MarcGrol/furniturestore/lib/mylog"
)

type graphqlClient struct {
	endpoint    string
	accessToken string
	sender      myhttpclient.HTTPSender
	inflight    singleflight.Group
	logger      mylog.Logger
}

// NewGraphQLClient talks to the storefront api of the given shop domain. A domain that
// already carries a scheme is used as is.
func NewGraphQLClient(domain string, accessToken string, apiVersion string, sender myhttpclient.HTTPSender) Client {
	base := domain
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return &graphqlClient{
		endpoint:    fmt.Sprintf("%s/api/%s/graphql.json", strings.TrimSuffix(base, "/"), apiVersion),
		accessToken: accessToken,
		sender:      sender,
		logger:      mylog.New("commerce"),
	}
}

func (gc *graphqlClient) ListProducts(c context.Context, first int) ([]Product, error) {
	resp := struct {
		Products gqlConnection[gqlProduct] `json:"products"`
	}{}
	err := gc.query(c, productsQuery, map[string]any{"first": first}, &resp)
	if err != nil {
		return nil, err
	}
	return toProducts(resp.Products), nil
}

func (gc *graphqlClient) GetProductByID(c context.Context, id string) (Product, error) {
	return gc.getProduct(c, productByIDQuery, map[string]any{"id": ProductGID(id)})
}

func (gc *graphqlClient) GetProductByHandle(c context.Context, handle string) (Product, error) {
	return gc.getProduct(c, productByHandleQuery, map[string]any{"handle": handle})
}

func (gc *graphqlClient) getProduct(c context.Context, query string, variables map[string]any) (Product, error) {
	resp := struct {
		Product *gqlProduct `json:"product"`
	}{}
	err := gc.query(c, query, variables, &resp)
	if err != nil {
		if myerrors.GetHTTPStatus(err) == http.StatusNotFound {
			return Product{}, myerrors.NewNotFoundError(errors.New("Product not found"))
		}
		return Product{}, err
	}
	if resp.Product == nil {
		return Product{}, myerrors.NewNotFoundError(errors.New("Product not found"))
	}
	return resp.Product.toProduct(), nil
}

func (gc *graphqlClient) ListCollections(c context.Context, first int) ([]Collection, error) {
	resp := struct {
		Collections gqlConnection[gqlCollection] `json:"collections"`
	}{}
	err := gc.query(c, collectionsQuery, map[string]any{"first": first}, &resp)
	if err != nil {
		return nil, err
	}
	result := []Collection{}
	for _, col := range resp.Collections.nodes() {
		result = append(result, col.toCollection())
	}
	return result, nil
}

func (gc *graphqlClient) GetCollectionByHandle(c context.Context, handle string, firstProducts int) (Collection, error) {
	resp := struct {
		Collection *gqlCollection `json:"collection"`
	}{}
	err := gc.query(c, collectionByHandleQuery, map[string]any{"handle": handle, "first": firstProducts}, &resp)
	if err != nil {
		if myerrors.GetHTTPStatus(err) == http.StatusNotFound {
			return Collection{}, myerrors.NewNotFoundError(errors.New("Collection not found"))
		}
		return Collection{}, err
	}
	if resp.Collection == nil {
		return Collection{}, myerrors.NewNotFoundError(errors.New("Collection not found"))
	}
	return resp.Collection.toCollection(), nil
}

func (gc *graphqlClient) CreateCheckout(c context.Context, lines []LineItem) (Checkout, error) {
	return gc.mutateCheckout(c, "checkoutCreate", checkoutCreateMutation, map[string]any{
		"input": map[string]any{"lineItems": lineItemInputs(lines)},
	})
}

func (gc *graphqlClient) ReplaceCheckoutLines(c context.Context, checkoutID string, lines []LineItem) (Checkout, error) {
	return gc.mutateCheckout(c, "checkoutLineItemsReplace", checkoutLineItemsReplaceMutation, map[string]any{
		"checkoutId": checkoutID,
		"lineItems":  lineItemInputs(lines),
	})
}

func (gc *graphqlClient) AddCheckoutLines(c context.Context, checkoutID string, lines []LineItem) (Checkout, error) {
	return gc.mutateCheckout(c, "checkoutLineItemsAdd", checkoutLineItemsAddMutation, map[string]any{
		"checkoutId": checkoutID,
		"lineItems":  lineItemInputs(lines),
	})
}

func (gc *graphqlClient) UpdateCheckoutLines(c context.Context, checkoutID string, lines []LineUpdate) (Checkout, error) {
	updates := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		updates = append(updates, map[string]any{"id": l.ID, "quantity": l.Quantity})
	}
	return gc.mutateCheckout(c, "checkoutLineItemsUpdate", checkoutLineItemsUpdateMutation, map[string]any{
		"checkoutId": checkoutID,
		"lineItems":  updates,
	})
}

func (gc *graphqlClient) RemoveCheckoutLines(c context.Context, checkoutID string, lineIDs []string) (Checkout, error) {
	return gc.mutateCheckout(c, "checkoutLineItemsRemove", checkoutLineItemsRemoveMutation, map[string]any{
		"checkoutId":  checkoutID,
		"lineItemIds": lineIDs,
	})
}

func lineItemInputs(lines []LineItem) []map[string]any {
	inputs := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, map[string]any{"variantId": l.VariantID, "quantity": l.Quantity})
	}
	return inputs
}

func (gc *graphqlClient) mutateCheckout(c context.Context, field string, mutation string, variables map[string]any) (Checkout, error) {
	data, err := gc.do(c, mutation, variables)
	if err != nil {
		return Checkout{}, err
	}

	resp := map[string]gqlCheckoutPayload{}
	err = json.Unmarshal(data, &resp)
	if err != nil {
		return Checkout{}, myerrors.NewUpstreamError(http.StatusBadGateway, fmt.Errorf("error parsing %s response: %s", field, err), nil)
	}

	payload := resp[field]
	if len(payload.CheckoutUserErrors) > 0 {
		return Checkout{}, myerrors.WithDetails(myerrors.NewInvalidInputError(errors.New(payload.CheckoutUserErrors[0].Message)), payload.CheckoutUserErrors)
	}
	if payload.Checkout == nil {
		return Checkout{}, myerrors.NewNotFoundError(errors.New("Checkout not found"))
	}

	gc.logger.Log(c, payload.Checkout.ID, mylog.SeverityInfo, "%s: checkout has %d lines", field, len(payload.Checkout.LineItems.Edges))

	return payload.Checkout.toCheckout(), nil
}

// query collapses identical reads that are in flight at the same time; nothing is kept
// once the call returns. The shared call is bounded by the http client timeout, not by the
// request of whoever started it, so each caller only waits for its own context.
func (gc *graphqlClient) query(c context.Context, query string, variables map[string]any, dest any) error {
	key, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("error marshalling graphql request: %s", err)
	}

	shared := mycontext.Detached(c)
	resultChan := gc.inflight.DoChan(string(key), func() (any, error) {
		return gc.do(shared, query, variables)
	})

	var result singleflight.Result
	select {
	case <-c.Done():
		return c.Err()
	case result = <-resultChan:
	}
	if result.Err != nil {
		return result.Err
	}

	err = json.Unmarshal(result.Val.(json.RawMessage), dest)
	if err != nil {
		return myerrors.NewUpstreamError(http.StatusBadGateway, fmt.Errorf("error parsing graphql data: %s", err), nil)
	}
	return nil
}

func (gc *graphqlClient) do(c context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("error marshalling graphql request: %s", err)
	}

	status, respBody, err := gc.sender.Send(c, http.MethodPost, gc.endpoint, map[string]string{
		"X-Shopify-Storefront-Access-Token": gc.accessToken,
	}, body)
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		return nil, myerrors.NewUpstreamError(status, fmt.Errorf("commerce api returned http %d", status), upstreamDetails(respBody))
	}

	resp := gqlResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return nil, myerrors.NewUpstreamError(http.StatusBadGateway, fmt.Errorf("error parsing graphql response: %s", err), nil)
	}
	if len(resp.Errors) > 0 {
		return nil, myerrors.NewUpstreamError(http.StatusBadGateway, errors.New(resp.Errors[0].Message), resp.Errors)
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, myerrors.NewUpstreamError(http.StatusBadGateway, errors.New("graphql response without data"), nil)
	}

	return resp.Data, nil
}

// upstreamDetails returns the upstream body as json when it is json, else as text.
func upstreamDetails(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var asJSON any
	if json.Unmarshal(body, &asJSON) == nil {
		return asJSON
	}
	return string(body)
}
