package billing

import (
	"fmt"

	"github.com/goccy/go-json"

	"billdocs/internal/model"
)

// EncodeLineItems serializes items into the opaque blob stored with a document.
// Order is preserved and a nil slice encodes as an empty array.
func EncodeLineItems(items []model.LineItem) ([]byte, error) {
	if items == nil {
		items = []model.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}
	return b, nil
}

// DecodeLineItems is the inverse of EncodeLineItems. An empty blob yields no items.
func DecodeLineItems(blob []byte) ([]model.LineItem, error) {
	items := make([]model.LineItem, 0)
	if len(blob) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}
	return items, nil
}
