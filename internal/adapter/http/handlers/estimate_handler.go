package handlers

import (
	request "cost_estimates/internal/adapter/http/dto/request"
	response "cost_estimates/internal/adapter/http/dto/response"
	"cost_estimates/internal/domain/pricing"
	"cost_estimates/internal/usecase"
	"cost_estimates/pkg"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for cost estimates.

type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate godoc
// @Summary      Create an estimate
// @Description  Prices every order line and stores the estimate with its total.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateEstimateRequest  true  "Order lines"
// @Success      201   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.CreateEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	orders, err := payload.ResolveOrders()
	if err != nil {
		writeError(c, err)
		return
	}

	estimate, err := h.usecase.CreateEstimate(c.Request.Context(), orders)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// ListEstimates godoc
// @Summary      List estimates
// @Tags         estimates
// @Produce      json
// @Success      200  {array}   response.EstimateResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /estimates [get]
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	list, err := h.usecase.ListEstimates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromEstimates(list))
}

// GetEstimate godoc
// @Summary      Get an estimate
// @Tags         estimates
// @Produce      json
// @Param        id   path      string  true  "Estimate ID"
// @Success      200  {object}  response.EstimateResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// UpdateEstimate godoc
// @Summary      Replace the items of an estimate
// @Description  Flattens the order lines of every item, prices them again and replaces items and total.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "Estimate ID"
// @Param        body  body      request.UpdateEstimateRequest  true  "Items"
// @Success      200   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /estimates/{id} [put]
func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	var payload request.UpdateEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	orders, err := payload.ResolveOrders()
	if err != nil {
		writeError(c, err)
		return
	}

	estimate, err := h.usecase.UpdateEstimate(c.Request.Context(), c.Param("id"), orders)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// DeleteEstimate godoc
// @Summary      Delete an estimate
// @Tags         estimates
// @Produce      json
// @Param        id   path      string  true  "Estimate ID"
// @Success      200  {object}  response.DeleteEstimateResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /estimates/{id} [delete]
func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	deleted, err := h.usecase.DeleteEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromDeletedEstimate(deleted))
}

func writeError(c *gin.Context, err error) {
	appErr := mapEstimateError(err)
	_ = c.Error(appErr)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapEstimateError(err error) *pkg.AppError {
	var (
		validationErr  *pricing.ValidationError
		calculationErr *pricing.CalculationError
	)
	switch {
	case errors.As(err, &validationErr):
		return errInvalidEstimatePayload.WithDetails(validationErr.Error())
	case errors.As(err, &calculationErr):
		return pkg.NewDomainError("ESTIMATE_CALCULATION_FAILED", "Estimate could not be calculated", err, http.StatusBadRequest).
			WithDetails(calculationErr.Error())
	case errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError).
			WithDetails(err.Error())
	}
}
