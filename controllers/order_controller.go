package controllers

import (
	"net/http"
	"strconv"

	"fashion-store/models"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
)

// OrderController serves the admin side of orders and shipments.
type OrderController struct {
	orders   *services.OrderService
	tracking *services.TrackingService
	shipping *services.ShippingService
}

func NewOrderController(orders *services.OrderService, tracking *services.TrackingService, shipping *services.ShippingService) *OrderController {
	return &OrderController{orders: orders, tracking: tracking, shipping: shipping}
}

// @Summary List orders
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "paid, shipped or delivered"
// @Success 200 {object} models.PaginationResponse
// @Router /api/admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := getPaginationParams(c, 20)

	orders, meta, err := ctrl.orders.List(c.Request.Context(), page, limit, c.Query("status"))
	if err != nil {
		respondError(c, err, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, models.PaginationResponse{Success: true, Message: "Orders retrieved", Data: orders, Meta: meta})
}

// @Summary Assign tracking number
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.AssignTrackingRequest true "Tracking"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/orders/{id}/tracking [patch]
func (ctrl *OrderController) AssignTracking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid order ID", nil)
		return
	}

	var req models.AssignTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	order, err := ctrl.orders.AssignTracking(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to assign tracking number")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Tracking number assigned", Data: order})
}

// @Summary Record shipment event
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateTrackingEventRequest true "Event"
// @Success 201 {object} models.Response{data=models.TrackingEvent}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/shipping/events [post]
func (ctrl *OrderController) AddShippingEvent(c *gin.Context) {
	var req models.CreateTrackingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	event, err := ctrl.tracking.AddEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to record shipping event")
		return
	}
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Shipping event recorded", Data: event})
}

// @Summary Create shipping provider
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProviderRequest true "Provider"
// @Success 201 {object} models.Response{data=models.ShippingProvider}
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/shipping/providers [post]
func (ctrl *OrderController) CreateProvider(c *gin.Context) {
	var req models.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	provider, err := ctrl.shipping.CreateProvider(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create shipping provider")
		return
	}
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Shipping provider created", Data: provider})
}
