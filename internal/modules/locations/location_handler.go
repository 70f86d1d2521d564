package locations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"travel-agency/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler exposes the location directory over HTTP.
type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new location handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) List(c echo.Context) error {
	all, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListLocations: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list locations"})
	}
	return c.JSON(http.StatusOK, all)
}

func (h *Handler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid location ID"})
	}

	loc, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Location with id " + c.Param("id") + " not found"})
		}
		c.Logger().Error("Handler.GetLocationByID: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve location"})
	}
	return c.JSON(http.StatusOK, loc)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "name: cannot be blank"})
	}

	loc, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateLocation: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create location"})
	}
	return c.JSON(http.StatusCreated, loc)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid location ID"})
	}

	var req models.LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}

	loc, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Location with id " + c.Param("id") + " not found"})
		}
		c.Logger().Error("Handler.UpdateLocation: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update location"})
	}
	return c.JSON(http.StatusCreated, loc)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid location ID"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Location with id " + c.Param("id") + " not found"})
		}
		c.Logger().Error("Handler.DeleteLocation: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete location"})
	}
	return c.JSON(http.StatusAccepted, models.MessageResponse{Message: "Deleted"})
}
