package controllers

import (
	"net/http"

	"fashion-store/models"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
)

type ShippingController struct {
	shipping *services.ShippingService
	tracking *services.TrackingService
}

func NewShippingController(shipping *services.ShippingService, tracking *services.TrackingService) *ShippingController {
	return &ShippingController{shipping: shipping, tracking: tracking}
}

// @Summary List shipping providers
// @Tags Shipping
// @Produce json
// @Success 200 {object} models.Response{data=[]models.ShippingProvider}
// @Router /api/shipping/providers [get]
func (ctrl *ShippingController) ListProviders(c *gin.Context) {
	providers, err := ctrl.shipping.ListProviders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load shipping providers")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Shipping providers retrieved", Data: providers})
}

// @Summary Quote shipping cost
// @Description cost = (base + weight x per_kg) x region multiplier
// @Tags Shipping
// @Accept json
// @Produce json
// @Param request body models.ShippingQuoteRequest true "Provider, address and items"
// @Success 200 {object} models.Response{data=models.ShippingQuote}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/shipping/providers [post]
func (ctrl *ShippingController) Quote(c *gin.Context) {
	var req models.ShippingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	quote, err := ctrl.shipping.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to quote shipping")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Shipping quote calculated", Data: quote})
}

// @Summary Track shipment
// @Tags Shipping
// @Produce json
// @Param tracking_number query string true "Tracking number"
// @Success 200 {object} models.Response{data=models.TrackingRecord}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/shipping/track [get]
func (ctrl *ShippingController) Track(c *gin.Context) {
	record, err := ctrl.tracking.Lookup(c.Request.Context(), c.Query("tracking_number"))
	if err != nil {
		respondError(c, err, "Failed to look up tracking number")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Tracking record retrieved", Data: record})
}
