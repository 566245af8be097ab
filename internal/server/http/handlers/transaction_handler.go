package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/washpoint/washpoint/internal/server/http/dto"
)

// TransactionHandler exposes the customer's payment history.
type TransactionHandler struct {
	facade TransactionFacade
}

// NewTransactionHandler constructs TransactionHandler.
func NewTransactionHandler(facade TransactionFacade) *TransactionHandler {
	return &TransactionHandler{facade: facade}
}

// List handles GET /api/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	transactions, err := h.facade.Transactions(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		response = append(response, dto.FromTransaction(t))
	}
	c.JSON(http.StatusOK, response)
}
