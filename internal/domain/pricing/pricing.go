// Package pricing turns work-order lines into costs, prices and estimate
// totals. Every function is pure and safe for concurrent use.
package pricing

import (
	"math"
	"strings"

	"cost_estimates/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// Quote is the computed cost and price of a single order line.
type Quote struct {
	Cost  float64
	Price float64
}

// Result is the outcome of ProcessOrders.
type Result struct {
	Items []entities.ProcessedItem
	Total entities.Total
}

// ValidateOrders checks that lines is non-empty and that every line carries
// the fields needed to price it. Units and rate are only checked for
// presence (non-zero); negative values are accepted.
func ValidateOrders(lines []entities.OrderLine) error {
	if len(lines) == 0 {
		return sequenceError(ErrOrdersEmpty)
	}
	for i, l := range lines {
		if field := missingField(l); field != "" {
			return &ValidationError{Index: i, Field: field, Err: ErrMissingField}
		}
		if l.Mode != "" && !l.Mode.Valid() {
			return &ValidationError{Index: i, Field: "mode", Err: ErrInvalidMode}
		}
	}
	return nil
}

func missingField(l entities.OrderLine) string {
	switch {
	case strings.TrimSpace(l.Type) == "":
		return "type"
	case strings.TrimSpace(l.Item) == "":
		return "item"
	case l.Units == 0:
		return "units"
	case l.Rate == 0:
		return "rate"
	case l.Margin == nil:
		return "margin"
	}
	return ""
}

// CalculateCostAndPrice prices one order line.
//
// cost is units*time*rate for time-based lines and units*rate for flat ones.
// price grosses cost up so that margin percent of the price is profit,
// rounded half up to a whole number.
func CalculateCostAndPrice(line entities.OrderLine) (Quote, error) {
	cost, price, err := quote(line)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Cost: cost.InexactFloat64(), Price: price.InexactFloat64()}, nil
}

func quote(line entities.OrderLine) (cost, price decimal.Decimal, err error) {
	margin := decimal.Zero
	if line.Margin != nil {
		margin = decimal.NewFromFloat(*line.Margin)
	}
	if margin.GreaterThanOrEqual(hundred) {
		return decimal.Zero, decimal.Zero, &CalculationError{Index: 0, Margin: margin.InexactFloat64()}
	}

	cost = decimal.NewFromFloat(line.Units).Mul(decimal.NewFromFloat(line.Rate))
	if line.ResolvedMode() == entities.PricingModeTime {
		t := decimal.Zero
		if line.Time != nil {
			t = decimal.NewFromFloat(*line.Time)
		}
		cost = cost.Mul(t)
	}

	divisor := decimal.NewFromInt(1).Sub(margin.Div(hundred))
	price = roundHalfUp(cost.Div(divisor))
	if !finite(cost) || !finite(price) {
		return decimal.Zero, decimal.Zero, &CalculationError{Index: 0, Margin: margin.InexactFloat64(), Reason: "cost or price is not a finite number"}
	}
	return cost, price, nil
}

func finite(d decimal.Decimal) bool {
	f := d.InexactFloat64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ProcessOrders prices every line, preserving input order, and aggregates
// the estimate total. Total.Margin is the average of the input margins
// rounded half up.
func ProcessOrders(lines []entities.OrderLine) (Result, error) {
	if len(lines) == 0 {
		return Result{}, sequenceError(ErrOrdersEmpty)
	}

	items := make([]entities.ProcessedItem, 0, len(lines))
	totalCost, totalPrice, marginSum := decimal.Zero, decimal.Zero, decimal.Zero
	for i, l := range lines {
		cost, price, err := quote(l)
		if err != nil {
			if ce, ok := err.(*CalculationError); ok {
				ce.Index = i
			}
			return Result{}, err
		}
		items = append(items, entities.ProcessedItem{
			Order: []entities.OrderLine{l},
			Cost:  cost.InexactFloat64(),
			Price: price.InexactFloat64(),
		})
		totalCost = totalCost.Add(cost)
		totalPrice = totalPrice.Add(price)
		if l.Margin != nil {
			marginSum = marginSum.Add(decimal.NewFromFloat(*l.Margin))
		}
	}

	if !finite(totalCost) || !finite(totalPrice) {
		return Result{}, &CalculationError{Index: -1, Reason: "estimate total is not a finite number"}
	}

	avgMargin := roundHalfUp(marginSum.Div(decimal.NewFromInt(int64(len(lines)))))
	return Result{
		Items: items,
		Total: entities.Total{
			Cost:   totalCost.InexactFloat64(),
			Margin: avgMargin.InexactFloat64(),
			Price:  totalPrice.InexactFloat64(),
		},
	}, nil
}

// FlattenItems collects the order lines of previously processed items, in
// order, so they can be priced again.
func FlattenItems(items []entities.ProcessedItem) []entities.OrderLine {
	var lines []entities.OrderLine
	for _, it := range items {
		lines = append(lines, it.Order...)
	}
	return lines
}

func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}
