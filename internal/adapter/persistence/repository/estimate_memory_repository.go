package repository

import (
	"context"
	"sync"
	"time"

	"cost_estimates/internal/domain/entities"
	"cost_estimates/internal/usecase/interfaces"

	"github.com/go-faster/errors"
)

// EstimateMemoryRepository keeps estimates in process memory. It backs the
// "memory" store driver used for local runs and end-to-end tests; data does
// not survive a restart.
type EstimateMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]entities.Estimate
	order []string
}

var _ interfaces.IEstimateRepository = (*EstimateMemoryRepository)(nil)

func NewEstimateMemoryRepository() *EstimateMemoryRepository {
	return &EstimateMemoryRepository{byID: make(map[string]entities.Estimate)}
}

func (r *EstimateMemoryRepository) Create(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; ok {
		return entities.Estimate{}, errors.Errorf("estimate %s already exists", e.ID)
	}
	r.byID[e.ID] = cloneEstimate(e)
	r.order = append(r.order, e.ID)
	return cloneEstimate(e), nil
}

func (r *EstimateMemoryRepository) List(_ context.Context) ([]entities.Estimate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Estimate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneEstimate(r.byID[id]))
	}
	return out, nil
}

func (r *EstimateMemoryRepository) GetByID(_ context.Context, id string) (entities.Estimate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return entities.Estimate{}, nil
	}
	return cloneEstimate(e), nil
}

func (r *EstimateMemoryRepository) ReplaceItemsByID(_ context.Context, id string, items []entities.ProcessedItem, total entities.Total) (entities.Estimate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return entities.Estimate{}, nil
	}
	e.Items = cloneItems(items)
	e.Total = total
	e.UpdatedAt = time.Now().UTC()
	r.byID[id] = e
	return cloneEstimate(e), nil
}

func (r *EstimateMemoryRepository) DeleteByID(_ context.Context, id string) (entities.Estimate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return entities.Estimate{}, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return e, nil
}

func cloneEstimate(e entities.Estimate) entities.Estimate {
	e.Items = cloneItems(e.Items)
	return e
}

func cloneItems(items []entities.ProcessedItem) []entities.ProcessedItem {
	if items == nil {
		return nil
	}
	out := make([]entities.ProcessedItem, len(items))
	for i, it := range items {
		order := make([]entities.OrderLine, len(it.Order))
		for j, l := range it.Order {
			l.Time = clonePtr(l.Time)
			l.Margin = clonePtr(l.Margin)
			order[j] = l
		}
		it.Order = order
		out[i] = it
	}
	return out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
