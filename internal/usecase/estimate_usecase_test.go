package usecase

import (
	"context"
	"errors"
	"testing"

	"cost_estimates/internal/domain/entities"
	"cost_estimates/internal/domain/pricing"
	mock_interfaces "cost_estimates/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func digout() entities.OrderLine {
	return entities.OrderLine{Type: "labor", Item: "digout", Units: 3, Time: entities.Float64(3), Rate: 30, Margin: entities.Float64(30)}
}

func asphalt() entities.OrderLine {
	return entities.OrderLine{Type: "materials", Item: "asphalt", Units: 100, Rate: 75, Margin: entities.Float64(20)}
}

func TestEstimateUseCase_CreateEstimate(t *testing.T) {
	t.Run("empty orders", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.CreateEstimate(context.Background(), nil)
		if !errors.Is(err, pricing.ErrOrdersEmpty) {
			t.Fatalf("expected ErrOrdersEmpty, got %v", err)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		line := digout()
		line.Margin = nil
		_, err := uc.CreateEstimate(context.Background(), []entities.OrderLine{line})
		var ve *pricing.ValidationError
		if !errors.As(err, &ve) || ve.Field != "margin" {
			t.Fatalf("expected margin ValidationError, got %v", err)
		}
	})

	t.Run("margin of 100", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		line := asphalt()
		line.Margin = entities.Float64(100)
		_, err := uc.CreateEstimate(context.Background(), []entities.OrderLine{digout(), line})
		var ce *pricing.CalculationError
		if !errors.As(err, &ce) || ce.Index != 1 {
			t.Fatalf("expected CalculationError at index 1, got %v", err)
		}
	})

	t.Run("repo create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		dbErr := errors.New("db")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, dbErr)

		_, err := uc.CreateEstimate(context.Background(), []entities.OrderLine{digout()})
		var se *StoreError
		if !errors.As(err, &se) || se.Op != "create" {
			t.Fatalf("expected StoreError, got %v", err)
		}
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected cause to be preserved, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.ID == "" {
					t.Fatalf("expected generated id")
				}
				if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return e, nil
			},
		)

		res, err := uc.CreateEstimate(context.Background(), []entities.OrderLine{digout(), asphalt()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(res.Items))
		}
		if res.Items[0].Cost != 270 || res.Items[0].Price != 386 {
			t.Fatalf("unexpected first item: %+v", res.Items[0])
		}
		if res.Items[1].Cost != 7500 || res.Items[1].Price != 9375 {
			t.Fatalf("unexpected second item: %+v", res.Items[1])
		}
		if res.Total.Cost != 7770 || res.Total.Price != 9761 || res.Total.Margin != 25 {
			t.Fatalf("unexpected total: %+v", res.Total)
		}
		if res.Items[0].Order[0].Mode != entities.PricingModeTime || res.Items[1].Order[0].Mode != entities.PricingModeFlat {
			t.Fatalf("expected pricing modes to be pinned: %+v", res.Items)
		}
	})
}

func TestEstimateUseCase_ListEstimates(t *testing.T) {
	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db"))

		_, err := uc.ListEstimates(context.Background())
		var se *StoreError
		if !errors.As(err, &se) || se.Err.Error() != "db" {
			t.Fatalf("expected db StoreError, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().List(gomock.Any()).Return([]entities.Estimate{{ID: "a"}, {ID: "b"}}, nil)

		res, err := uc.ListEstimates(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 || res[0].ID != "a" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestEstimateUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.GetByID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.Estimate{}, errors.New("db"))

		_, err := uc.GetByID(context.Background(), "id-1")
		var se *StoreError
		if !errors.As(err, &se) {
			t.Fatalf("expected StoreError, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.Estimate{}, nil)

		_, err := uc.GetByID(context.Background(), "id-1")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.Estimate{ID: "id-1"}, nil)

		res, err := uc.GetByID(context.Background(), " id-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "id-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestEstimateUseCase_UpdateEstimate(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.UpdateEstimate(context.Background(), "", []entities.OrderLine{digout()})
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("invalid orders never reach the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		_, err := uc.UpdateEstimate(context.Background(), "id-1", []entities.OrderLine{})
		if !errors.Is(err, pricing.ErrOrdersEmpty) {
			t.Fatalf("expected ErrOrdersEmpty, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().ReplaceItemsByID(gomock.Any(), "id-1", gomock.Any(), gomock.Any()).Return(entities.Estimate{}, errors.New("db"))

		_, err := uc.UpdateEstimate(context.Background(), "id-1", []entities.OrderLine{digout()})
		var se *StoreError
		if !errors.As(err, &se) || se.Op != "update" {
			t.Fatalf("expected update StoreError, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().ReplaceItemsByID(gomock.Any(), "id-1", gomock.Any(), gomock.Any()).Return(entities.Estimate{}, nil)

		_, err := uc.UpdateEstimate(context.Background(), "id-1", []entities.OrderLine{digout()})
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("success recomputes items and total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().ReplaceItemsByID(gomock.Any(), "id-1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, items []entities.ProcessedItem, total entities.Total) (entities.Estimate, error) {
				if len(items) != 2 {
					t.Fatalf("expected 2 items, got %d", len(items))
				}
				if total.Cost != 7770 || total.Price != 9761 {
					t.Fatalf("unexpected total: %+v", total)
				}
				return entities.Estimate{ID: id, Items: items, Total: total}, nil
			},
		)

		res, err := uc.UpdateEstimate(context.Background(), " id-1 ", []entities.OrderLine{digout(), asphalt()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "id-1" || res.Total.Margin != 25 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestEstimateUseCase_DeleteEstimate(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.DeleteEstimate(context.Background(), " ")
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().DeleteByID(gomock.Any(), "id-1").Return(entities.Estimate{}, errors.New("db"))

		_, err := uc.DeleteEstimate(context.Background(), "id-1")
		if err == nil || err.Error() != "estimate store delete: db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().DeleteByID(gomock.Any(), "id-1").Return(entities.Estimate{}, nil)

		_, err := uc.DeleteEstimate(context.Background(), "id-1")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().DeleteByID(gomock.Any(), "id-1").Return(entities.Estimate{ID: "id-1"}, nil)

		res, err := uc.DeleteEstimate(context.Background(), "id-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "id-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}
