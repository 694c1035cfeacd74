package handler

import (
	"log/slog"
	"net/http"

	"agrimap/internal/delivery/http/middleware"
	"agrimap/internal/delivery/http/response"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FarmHandler holds dependencies for farm-related handlers.
type FarmHandler struct {
	uc     usecase.FarmUsecase
	logger *slog.Logger
}

// NewFarmHandler is the constructor for FarmHandler, injected by Fx.
func NewFarmHandler(uc usecase.FarmUsecase, logger *slog.Logger) *FarmHandler {
	return &FarmHandler{
		uc:     uc,
		logger: logger,
	}
}

// createFarmRequest is the wire shape of a farm creation request.
type createFarmRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address string  `json:"address" validate:"required"`
	Size    float64 `json:"size" validate:"required,gt=0"`
	Yield   float64 `json:"yield" validate:"required,gt=0"`
}

// CreateFarm handles the farm registration request.
func (h *FarmHandler) CreateFarm(c echo.Context) error {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		return domainerrors.ErrUnauthorized.WrapMessage("no requester on context")
	}

	var req createFarmRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.NewBadRequest("Invalid farm input.").WrapMessage(err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateFarm(c.Request().Context(), requester, &usecase.CreateFarmInput{
		Name:    req.Name,
		Address: req.Address,
		Size:    req.Size,
		Yield:   req.Yield,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, output)
}

// ListFarms handles the farm listing request. Query parameters are strictly
// validated; an unknown sort key or a non-boolean outliers value never
// reaches the pipeline.
func (h *FarmHandler) ListFarms(c echo.Context) error {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		return domainerrors.ErrUnauthorized.WrapMessage("no requester on context")
	}

	input := &usecase.ListFarmsInput{}

	switch outliers := c.QueryParam("outliers"); outliers {
	case "", "false":
		input.IncludeOutliers = false
	case "true":
		input.IncludeOutliers = true
	default:
		return domainerrors.NewBadRequest("Query parameter outliers must be true or false.")
	}

	switch sortBy := usecase.SortKey(c.QueryParam("sortBy")); sortBy {
	case usecase.SortKeyNone, usecase.SortKeyName, usecase.SortKeyCreatedAt, usecase.SortKeyDrivingDistance:
		input.SortKey = sortBy
	default:
		return domainerrors.NewBadRequest("Query parameter sortBy must be one of name, createdAt, drivingDistance.")
	}

	output, err := h.uc.ListFarms(c.Request().Context(), requester, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, output)
}

// DeleteFarm handles the farm deletion request. A malformed id is rejected
// before any lookup.
func (h *FarmHandler) DeleteFarm(c echo.Context) error {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		return domainerrors.ErrUnauthorized.WrapMessage("no requester on context")
	}

	farmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.NewBadRequest("Invalid farm id.").WrapMessage(err.Error())
	}

	output, err := h.uc.DeleteFarm(c.Request().Context(), requester, farmID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, output)
}
