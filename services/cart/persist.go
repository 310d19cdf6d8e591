package cart

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
)

// Decimal prices have no exported fields, so datastore keeps a cart as a json document
// next to a few indexed properties.
var (
	_ datastore.PropertyLoadSaver = &Cart{}
)

func (c *Cart) Load(props []datastore.Property) error {
	for _, p := range props {
		if p.Name != "Document" {
			continue
		}
		doc, ok := p.Value.(string)
		if !ok {
			return fmt.Errorf("unexpected type %T for cart document", p.Value)
		}
		return json.Unmarshal([]byte(doc), c)
	}
	return nil
}

func (c *Cart) Save() ([]datastore.Property, error) {
	doc, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error marshalling cart %s: %s", c.UID, err)
	}
	return []datastore.Property{
		{Name: "UID", Value: c.UID},
		{Name: "CheckoutID", Value: c.CheckoutID},
		{Name: "LastModified", Value: c.LastModified.In(time.UTC)},
		{Name: "Document", Value: string(doc), NoIndex: true},
	}, nil
}
