package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade LaundryFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade LaundryFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	actor, err := h.facade.User(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), actor, req.ToPlaceOrderInput())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOrderData),
			errors.Is(err, domainErrors.ErrInvalidCoordinates),
			errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPaymentFailed):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromOrder(*order))
}

// List handles GET /api/orders. Staff may list another customer's orders
// via the customer_id query parameter.
func (h *OrderHandler) List(c *gin.Context) {
	actor, err := h.facade.User(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	customerID := actor.ID
	if raw := c.Query("customer_id"); raw != "" {
		if !actor.Role.IsStaff() {
			c.Status(http.StatusForbidden)
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		customerID = id
	}

	orders, err := h.facade.Orders(c.Request.Context(), customerID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.FromOrder(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id. Customers only see their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	actor, err := h.facade.User(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	if order.CustomerID != actor.ID && !actor.Role.IsStaff() {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(*order))
}
