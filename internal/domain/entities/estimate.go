package entities

import "time"

// PricingMode selects the cost formula of an OrderLine.
//
//   - flat: cost = units * rate (materials)
//   - time: cost = units * time * rate (labor, equipment)
type PricingMode string

const (
	PricingModeFlat PricingMode = "flat"
	PricingModeTime PricingMode = "time"
)

// Valid reports whether m is one of the known modes.
func (m PricingMode) Valid() bool {
	return m == PricingModeFlat || m == PricingModeTime
}

// OrderLine is one billable input item. It has no identity of its own and is
// always embedded in a ProcessedItem.
//
// Margin is a pointer so an absent margin can be told apart from 0.
type OrderLine struct {
	Type   string      `json:"type" dynamodbav:"type"`
	Item   string      `json:"item" dynamodbav:"item"`
	Units  float64     `json:"units" dynamodbav:"units"`
	Time   *float64    `json:"time,omitempty" dynamodbav:"time,omitempty"`
	Rate   float64     `json:"rate" dynamodbav:"rate"`
	Margin *float64    `json:"margin" dynamodbav:"margin"`
	Mode   PricingMode `json:"mode" dynamodbav:"mode"`
}

// ResolvedMode returns the explicit mode when set, otherwise the mode implied
// by the presence of a non-zero time.
func (l OrderLine) ResolvedMode() PricingMode {
	if l.Mode.Valid() {
		return l.Mode
	}
	if l.Time != nil && *l.Time != 0 {
		return PricingModeTime
	}
	return PricingModeFlat
}

// ProcessedItem is an OrderLine with its computed cost and price. Order is a
// list for compatibility with the stored document layout and always holds
// the single line the item was computed from.
type ProcessedItem struct {
	Order []OrderLine `json:"order" dynamodbav:"order"`
	Cost  float64     `json:"cost" dynamodbav:"cost"`
	Price float64     `json:"price" dynamodbav:"price"`
}

// Total aggregates every ProcessedItem of an Estimate. Margin is the rounded
// average of the input margins.
type Total struct {
	Cost   float64 `json:"cost" dynamodbav:"cost"`
	Margin float64 `json:"margin" dynamodbav:"margin"`
	Price  float64 `json:"price" dynamodbav:"price"`
}

// Estimate is the cost estimate persisted by the service.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Items and Total are always written together; Total is never patched on
// its own.
type Estimate struct {
	ID        string          `json:"id"`
	Items     []ProcessedItem `json:"items"`
	Total     Total           `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Float64 returns a pointer to v. Handy for optional OrderLine fields.
func Float64(v float64) *float64 {
	return &v
}
