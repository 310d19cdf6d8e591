package checkout

import "github.com/MarcGrol/furniturestore/services/commerce"

type LineItemsRequest struct {
	LineItems []commerce.LineItem `json:"lineItems"`
}

type LineUpdatesRequest struct {
	LineItems []commerce.LineUpdate `json:"lineItems"`
}

type RemoveLineItemsRequest struct {
	LineItemIDs []string `json:"lineItemIds"`
}

type CheckoutResponse struct {
	Checkout commerce.Checkout `json:"checkout"`
}
