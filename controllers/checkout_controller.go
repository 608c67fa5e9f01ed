package controllers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/services"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// @Summary Checkout
// @Description Validate the cart, take payment, and create the order
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Checkout data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 402 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	userID := c.GetInt("user_id")
	email := c.GetString("user_email")

	order, err := ctrl.checkout.Checkout(c.Request.Context(), userID, email, req)
	if err != nil {
		status, message := checkoutErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Order placed", "data": order})
}

func checkoutErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrTermsNotAccepted),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrPostcodeNotServed),
		errors.Is(err, services.ErrInvalidMode),
		errors.Is(err, services.ErrSlotNotFound),
		errors.Is(err, services.ErrSlotInactive),
		errors.Is(err, services.ErrSlotDateRequired),
		errors.Is(err, services.ErrSlotDateInvalid),
		errors.Is(err, services.ErrPromoNotFound),
		errors.Is(err, services.ErrPromoInactive),
		errors.Is(err, services.ErrPromoNotStarted),
		errors.Is(err, services.ErrPromoExpired),
		errors.Is(err, services.ErrPromoMinOrder),
		errors.Is(err, services.ErrPromoUsageCapped):
		return 400, err.Error()
	case errors.Is(err, services.ErrSlotFull):
		return 409, err.Error()
	case errors.Is(err, services.ErrPaymentDeclined):
		return 402, err.Error()
	default:
		log.Println("Checkout failed:", err)
		return 500, "Failed to place order"
	}
}
