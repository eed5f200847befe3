package response

import (
	"cost_estimates/internal/domain/entities"
	"time"
)

type OrderLineResponse struct {
	Type   string   `json:"type"`
	Item   string   `json:"item"`
	Units  float64  `json:"units"`
	Time   *float64 `json:"time,omitempty"`
	Rate   float64  `json:"rate"`
	Margin float64  `json:"margin"`
	Mode   string   `json:"mode"`
}

type EstimateItemResponse struct {
	Order []OrderLineResponse `json:"order"`
	Cost  float64             `json:"cost"`
	Price float64             `json:"price"`
}

type TotalResponse struct {
	Cost   float64 `json:"cost"`
	Margin float64 `json:"margin"`
	Price  float64 `json:"price"`
}

type EstimateResponse struct {
	EstimateID string                 `json:"estimate_id"`
	ID         string                 `json:"id"`
	Items      []EstimateItemResponse `json:"items"`
	Total      TotalResponse          `json:"total"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type DeleteEstimateResponse struct {
	Success  bool             `json:"success"`
	Estimate EstimateResponse `json:"estimate"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	items := make([]EstimateItemResponse, 0, len(e.Items))
	for _, it := range e.Items {
		order := make([]OrderLineResponse, 0, len(it.Order))
		for _, l := range it.Order {
			order = append(order, fromOrderLine(l))
		}
		items = append(items, EstimateItemResponse{Order: order, Cost: it.Cost, Price: it.Price})
	}

	return EstimateResponse{
		EstimateID: e.ID,
		ID:         e.ID,
		Items:      items,
		Total: TotalResponse{
			Cost:   e.Total.Cost,
			Margin: e.Total.Margin,
			Price:  e.Total.Price,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func FromEstimates(list []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimate(e))
	}
	return out
}

func FromDeletedEstimate(e entities.Estimate) DeleteEstimateResponse {
	return DeleteEstimateResponse{Success: true, Estimate: FromEstimate(e)}
}

func fromOrderLine(l entities.OrderLine) OrderLineResponse {
	var margin float64
	if l.Margin != nil {
		margin = *l.Margin
	}
	return OrderLineResponse{
		Type:   l.Type,
		Item:   l.Item,
		Units:  l.Units,
		Time:   l.Time,
		Rate:   l.Rate,
		Margin: margin,
		Mode:   string(l.ResolvedMode()),
	}
}
