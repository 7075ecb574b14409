package controllers

import (
	"io"
	"net/http"

	"fashion-store/models"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
)

const (
	SignatureHeader = "Stripe-Signature"
	maxWebhookBody  = 64 << 10
)

type WebhookController struct {
	webhooks *services.WebhookService
	checkout *services.CheckoutService
}

func NewWebhookController(webhooks *services.WebhookService, checkout *services.CheckoutService) *WebhookController {
	return &WebhookController{webhooks: webhooks, checkout: checkout}
}

// @Summary Payment webhook
// @Description Receives signed payment processor events
// @Tags Checkout
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "t=<unix>,v1=<hex>"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Router /api/checkout/success [post]
func (ctrl *WebhookController) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		badRequest(c, "Unable to read request body", err)
		return
	}
	if len(payload) > maxWebhookBody {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Success: false,
			Message: "Webhook payload too large",
		})
		return
	}

	if _, err := ctrl.webhooks.HandleEvent(c.Request.Context(), payload, c.GetHeader(SignatureHeader)); err != nil {
		respondError(c, err, "Webhook error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// @Summary Poll checkout session
// @Tags Checkout
// @Produce json
// @Param session_id query string true "Checkout session id"
// @Success 200 {object} models.Response{data=models.CheckoutSessionStatus}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/checkout/success [get]
func (ctrl *WebhookController) GetSessionStatus(c *gin.Context) {
	status, err := ctrl.checkout.GetSessionStatus(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve checkout session")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout session retrieved", Data: status})
}
