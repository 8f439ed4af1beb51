// Package extract implements the cascading multi-strategy extraction
// pipeline: three independently implemented levels of increasing cost, a
// shared validation/normalization layer, and a controller that escalates
// through the levels and picks a winner.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Product is the canonical output unit of the price-list cascade. Price nil
// means absent; zero is a stated zero price and is retained.
type Product struct {
	FullName string   `json:"full_name"`
	Price    *float64 `json:"price"`
	Stock    string   `json:"stock"`
	Supplier string   `json:"supplier"`
}

// RequestedItem mirrors Product for the client-request cascade.
type RequestedItem struct {
	FullName string `json:"full_name"`
	Quantity int    `json:"quantity"`
}

// RawItem is the untyped record an extractor level produces before
// normalization. Model replies use either name or full_name keys and emit
// price/stock/quantity as numbers or strings; all of that tolerance lives
// here, in one place, so downstream code never branches on key presence.
type RawItem struct {
	Name     string
	Price    string
	Stock    string
	Quantity string
}

// UnmarshalJSON accepts the loose shapes the model-assisted levels return.
func (r *RawItem) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	r.Name = strings.TrimSpace(anyToString(firstPresent(m, "full_name", "name")))
	r.Price = strings.TrimSpace(anyToString(firstPresent(m, "price", "цена")))
	r.Stock = strings.TrimSpace(anyToString(firstPresent(m, "stock", "остаток")))
	r.Quantity = strings.TrimSpace(anyToString(firstPresent(m, "quantity", "qty", "количество")))
	return nil
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func anyToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
