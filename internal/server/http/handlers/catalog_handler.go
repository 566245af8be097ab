package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/server/http/dto"
)

// CatalogHandler manages the service catalog endpoints.
type CatalogHandler struct {
	facade LaundryFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade LaundryFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/services. Customers see active entries only; staff
// see the full catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	activeOnly := true
	if user, err := h.facade.User(c.Request.Context(), CurrentUserID(c)); err == nil && user.Role.IsStaff() {
		activeOnly = false
	}

	items, err := h.facade.Services(c.Request.Context(), activeOnly)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ServiceResponse, 0, len(items))
	for _, item := range items {
		response = append(response, dto.FromServiceItem(item))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/services.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.CreateService(c.Request.Context(), req.Name, req.Unit, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOrderData), errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromServiceItem(*item))
}

// Update handles PUT /api/services/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.UpdateService(c.Request.Context(), id, req.Name, req.Unit, req.Price, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOrderData), errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromServiceItem(*item))
}
