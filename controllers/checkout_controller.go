package controllers

import (
	"net/http"

	"fashion-store/middleware"
	"fashion-store/models"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkout      *services.CheckoutService
	defaultLocale string
}

func NewCheckoutController(checkout *services.CheckoutService, defaultLocale string) *CheckoutController {
	return &CheckoutController{checkout: checkout, defaultLocale: defaultLocale}
}

// @Summary Create checkout session
// @Description Builds a hosted checkout session for the given line items
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.CreateCheckoutSessionRequest true "Line items"
// @Success 200 {object} models.Response{data=models.CheckoutSessionResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/checkout_sessions [post]
func (ctrl *CheckoutController) CreateSession(c *gin.Context) {
	var req models.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if req.Locale == "" {
		req.Locale = middleware.RequestLocale(c, ctrl.defaultLocale)
	}

	session, err := ctrl.checkout.CreateSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create checkout session")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout session created", Data: session})
}

// @Summary Get checkout session
// @Description Retrieves the status of a checkout session
// @Tags Checkout
// @Produce json
// @Param session_id query string true "Checkout session id"
// @Success 200 {object} models.Response{data=models.CheckoutSessionStatus}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/checkout_sessions [get]
func (ctrl *CheckoutController) GetSession(c *gin.Context) {
	status, err := ctrl.checkout.GetSessionStatus(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve checkout session")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout session retrieved", Data: status})
}

// @Summary Create payment intent
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.PaymentIntentRequest true "Amount in major units"
// @Success 200 {object} models.Response{data=models.PaymentIntent}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/create-payment-intent [post]
func (ctrl *CheckoutController) CreatePaymentIntent(c *gin.Context) {
	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	intent, err := ctrl.checkout.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create payment intent")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Payment intent created", Data: intent})
}
