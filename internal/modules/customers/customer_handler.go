package customers

import (
	"errors"
	"net/http"
	"strconv"

	"travel-agency/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler exposes the customer operations over HTTP.
type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new customer handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: models.FormatValidationErrors(err)})
	}

	customer, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		if models.IsCreationFailed(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.CreateCustomer: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create customer"})
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid customer ID"})
	}

	var req models.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: models.FormatValidationErrors(err)})
	}

	customer, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Customer with id " + c.Param("id") + " not found"})
		}
		if models.IsCreationFailed(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.UpdateCustomer: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update customer"})
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid customer ID"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Customer with id " + c.Param("id") + " not found"})
		}
		c.Logger().Error("Handler.DeleteCustomer: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete customer"})
	}
	return c.JSON(http.StatusAccepted, models.MessageResponse{Message: "Accepted"})
}

func (h *Handler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid customer ID"})
	}

	customer, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Customer with id " + c.Param("id") + " not found"})
		}
		c.Logger().Error("Handler.GetCustomerByID: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve customer"})
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) List(c echo.Context) error {
	all, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListCustomers: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list customers"})
	}
	return c.JSON(http.StatusOK, all)
}
