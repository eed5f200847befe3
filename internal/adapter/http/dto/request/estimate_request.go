package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cost_estimates/internal/domain/entities"
	"cost_estimates/internal/domain/pricing"
)

// OrderLineRequest documents the shape of one order line. Payloads are
// decoded lazily (see ResolveOrders) so a non-array value can be reported
// as such instead of as a generic binding failure.
type OrderLineRequest struct {
	Type   string   `json:"type" example:"labor"`
	Item   string   `json:"item" example:"digout"`
	Units  float64  `json:"units" example:"3"`
	Time   *float64 `json:"time,omitempty" example:"3"`
	Rate   float64  `json:"rate" example:"30"`
	Margin *float64 `json:"margin" example:"30"`
	Mode   string   `json:"mode,omitempty" enums:"flat,time"`
}

// CreateEstimateRequest is the body of POST /estimates.
type CreateEstimateRequest struct {
	Orders json.RawMessage `json:"orders" swaggertype:"array,object"`
}

// ResolveOrders decodes and returns the submitted order lines. Only the
// shape is checked here; field rules belong to pricing.ValidateOrders.
func (r CreateEstimateRequest) ResolveOrders() ([]entities.OrderLine, error) {
	return decodeOrders(r.Orders)
}

// EstimateItemRequest is one element of an update payload. Cost and price
// are accepted for compatibility but ignored: they are always recomputed.
type EstimateItemRequest struct {
	Order json.RawMessage `json:"order" swaggertype:"array,object"`
	Cost  float64         `json:"cost"`
	Price float64         `json:"price"`
}

// UpdateEstimateRequest is the body of PUT /estimates/{id}.
type UpdateEstimateRequest struct {
	Items json.RawMessage `json:"items" swaggertype:"array,object"`
}

// ResolveOrders flattens the order lines of every submitted item, in order.
func (r UpdateEstimateRequest) ResolveOrders() ([]entities.OrderLine, error) {
	if !isArray(r.Items) {
		return nil, pricing.NewSequenceError(fmt.Errorf("items should be an array: %w", pricing.ErrOrdersNotArray))
	}
	var raw []EstimateItemRequest
	if err := json.Unmarshal(r.Items, &raw); err != nil {
		return nil, malformed(err)
	}

	items := make([]entities.ProcessedItem, 0, len(raw))
	for _, it := range raw {
		lines, err := decodeOrders(it.Order)
		if err != nil {
			return nil, err
		}
		items = append(items, entities.ProcessedItem{Order: lines})
	}
	return pricing.FlattenItems(items), nil
}

func decodeOrders(raw json.RawMessage) ([]entities.OrderLine, error) {
	if !isArray(raw) {
		return nil, pricing.NewSequenceError(pricing.ErrOrdersNotArray)
	}
	var lines []entities.OrderLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, malformed(err)
	}
	return lines, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func malformed(err error) error {
	return pricing.NewSequenceError(fmt.Errorf("%w: %v", pricing.ErrMalformedOrder, err))
}
