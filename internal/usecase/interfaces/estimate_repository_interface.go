package interfaces

import (
	"context"
	"cost_estimates/internal/domain/entities"
)

//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/mock_estimate_repository_interface.go -package=mock_interfaces

// IEstimateRepository abstracts persistence for Estimate.
//
// Lookups that find nothing return a zero Estimate (empty ID) and a nil
// error; errors are reserved for store failures.
//   - Create stores a new estimate with a caller-assigned id
//   - ReplaceItemsByID swaps items and total of an existing estimate in one write
//   - DeleteByID returns the estimate as it was before deletion

type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	List(ctx context.Context) ([]entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	ReplaceItemsByID(ctx context.Context, id string, items []entities.ProcessedItem, total entities.Total) (entities.Estimate, error)
	DeleteByID(ctx context.Context, id string) (entities.Estimate, error)
}
