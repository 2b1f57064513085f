package handlers

import (
	"net/http"

	"food-ordering-api/logging"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	CustomerName string            `json:"customerName" binding:"notblank"`
	Items        models.OrderItems `json:"items"`
	TotalPrice   float64           `json:"totalPrice"`
}

// PlaceOrder stores a submitted cart. The total is taken as sent by the
// client; submitting twice creates two orders.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clientError(c, http.StatusBadRequest, "place_order_failed", bindingMessage(err))
		return
	}

	order := models.Order{
		CustomerName: req.CustomerName,
		Items:        req.Items,
		TotalPrice:   req.TotalPrice,
	}
	if err := h.Store.CreateOrder(c.Request.Context(), &order); err != nil {
		serverError(c, "place_order_failed", err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("order placed", "order_id", order.ID, "lines", len(order.Items))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"orderId": order.ID,
	})
}
