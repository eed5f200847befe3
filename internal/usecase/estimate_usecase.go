package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cost_estimates/internal/domain/entities"
	"cost_estimates/internal/domain/pricing"
	"cost_estimates/internal/infrastructure/logger"
	"cost_estimates/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEstimateNotFound  = errors.New("estimate not found")
	ErrInvalidEstimateID = errors.New("invalid estimate id")
)

// StoreError reports a failed persistence operation. The underlying error is
// kept as-is so callers can inspect it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("estimate store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

//go:generate mockgen -source=estimate_usecase.go -destination=../adapter/http/handlers/mocks/mock_estimate_usecase.go -package=mocks

// IEstimateUseCase exposes cost estimate operations.
//
// Create and update price the submitted order lines before anything is
// written, so a stored estimate always has a total consistent with its items.

type IEstimateUseCase interface {
	CreateEstimate(ctx context.Context, orders []entities.OrderLine) (entities.Estimate, error)
	ListEstimates(ctx context.Context) ([]entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	UpdateEstimate(ctx context.Context, id string, orders []entities.OrderLine) (entities.Estimate, error)
	DeleteEstimate(ctx context.Context, id string) (entities.Estimate, error)
}

type EstimateUseCase struct {
	repo   interfaces.IEstimateRepository
	log    *logger.Logger
	tracer trace.Tracer
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, log *logger.Logger) *EstimateUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &EstimateUseCase{
		repo:   repo,
		log:    log.With("component", "estimate_usecase"),
		tracer: otel.Tracer("cost_estimates/usecase"),
	}
}

func (u *EstimateUseCase) CreateEstimate(ctx context.Context, orders []entities.OrderLine) (entities.Estimate, error) {
	ctx, span := u.tracer.Start(ctx, "EstimateUseCase.CreateEstimate", trace.WithAttributes(attribute.Int("orders", len(orders))))
	defer span.End()

	res, err := price(orders)
	if err != nil {
		recordError(span, err)
		return entities.Estimate{}, err
	}

	now := time.Now().UTC()
	e := entities.Estimate{
		ID:        uuid.NewString(),
		Items:     res.Items,
		Total:     res.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := u.repo.Create(ctx, e)
	if err != nil {
		u.log.Error("create estimate failed", "estimate_id", e.ID, "error", err)
		recordError(span, err)
		return entities.Estimate{}, &StoreError{Op: "create", Err: err}
	}

	u.log.Info("estimate created", "estimate_id", created.ID, "items", len(created.Items), "total_price", created.Total.Price)
	return created, nil
}

func (u *EstimateUseCase) ListEstimates(ctx context.Context) ([]entities.Estimate, error) {
	list, err := u.repo.List(ctx)
	if err != nil {
		u.log.Error("list estimates failed", "error", err)
		return nil, &StoreError{Op: "list", Err: err}
	}
	return list, nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		u.log.Error("get estimate failed", "estimate_id", id, "error", err)
		return entities.Estimate{}, &StoreError{Op: "get", Err: err}
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

// UpdateEstimate replaces the whole item list of an estimate with the given
// order lines and recomputes its total.
func (u *EstimateUseCase) UpdateEstimate(ctx context.Context, id string, orders []entities.OrderLine) (entities.Estimate, error) {
	ctx, span := u.tracer.Start(ctx, "EstimateUseCase.UpdateEstimate", trace.WithAttributes(
		attribute.String("estimate_id", id),
		attribute.Int("orders", len(orders)),
	))
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	res, err := price(orders)
	if err != nil {
		recordError(span, err)
		return entities.Estimate{}, err
	}

	updated, err := u.repo.ReplaceItemsByID(ctx, id, res.Items, res.Total)
	if err != nil {
		u.log.Error("update estimate failed", "estimate_id", id, "error", err)
		recordError(span, err)
		return entities.Estimate{}, &StoreError{Op: "update", Err: err}
	}
	if updated.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}

	u.log.Info("estimate updated", "estimate_id", id, "items", len(updated.Items), "total_price", updated.Total.Price)
	return updated, nil
}

func (u *EstimateUseCase) DeleteEstimate(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	deleted, err := u.repo.DeleteByID(ctx, id)
	if err != nil {
		u.log.Error("delete estimate failed", "estimate_id", id, "error", err)
		return entities.Estimate{}, &StoreError{Op: "delete", Err: err}
	}
	if deleted.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}

	u.log.Info("estimate deleted", "estimate_id", id)
	return deleted, nil
}

// price validates orders, pins every line to an explicit pricing mode and
// computes items and total.
func price(orders []entities.OrderLine) (pricing.Result, error) {
	if err := pricing.ValidateOrders(orders); err != nil {
		return pricing.Result{}, err
	}

	lines := make([]entities.OrderLine, len(orders))
	for i, l := range orders {
		l.Mode = l.ResolvedMode()
		lines[i] = l
	}
	return pricing.ProcessOrders(lines)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
