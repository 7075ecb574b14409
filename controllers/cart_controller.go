package controllers

import (
	"net/http"

	"fashion-store/middleware"
	"fashion-store/models"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartIDHeader  = "X-Cart-ID"
	cartIDCookie  = "cart_id"
	cartCookieAge = 30 * 24 * 60 * 60
)

type CartController struct {
	carts         *services.CartService
	defaultLocale string
}

func NewCartController(carts *services.CartService, defaultLocale string) *CartController {
	return &CartController{carts: carts, defaultLocale: defaultLocale}
}

// cartID returns the caller's cart id from the header or cookie, issuing a
// new one when neither holds a valid id. The id is echoed back either way.
func (ctrl *CartController) cartID(c *gin.Context) string {
	id := c.GetHeader(CartIDHeader)
	if id == "" {
		id, _ = c.Cookie(cartIDCookie)
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Header(CartIDHeader, id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartIDCookie, id, cartCookieAge, "/", "", false, true)
	return id
}

// @Summary Get cart
// @Description Get the current cart with item count and total
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Success 200 {object} models.Response{data=models.Cart}
// @Failure 500 {object} models.ErrorResponse
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.carts.GetCart(c.Request.Context(), ctrl.cartID(c))
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart retrieved", Data: cart})
}

// @Summary Add item to cart
// @Description Adds a product variant, merging quantity with an existing line
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Param request body models.AddCartItemRequest true "Item"
// @Success 200 {object} models.Response{data=models.Cart}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	locale := middleware.RequestLocale(c, ctrl.defaultLocale)
	cart, err := ctrl.carts.AddItem(c.Request.Context(), ctrl.cartID(c), req, locale)
	if err != nil {
		respondError(c, err, "Failed to add item")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Item added to cart", Data: cart})
}

// @Summary Update item quantity
// @Description Overwrites the quantity of a line; zero or less removes it
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Param request body models.UpdateCartItemRequest true "Line and quantity"
// @Success 200 {object} models.Response{data=models.Cart}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/cart/items [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	cart, err := ctrl.carts.UpdateQuantity(c.Request.Context(), ctrl.cartID(c), req.CartItemKey, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart updated", Data: cart})
}

// @Summary Remove item from cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Param request body models.CartItemKey true "Line key"
// @Success 200 {object} models.Response{data=models.Cart}
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cart/items [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	var key models.CartItemKey
	if err := c.ShouldBindJSON(&key); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	cart, err := ctrl.carts.RemoveItem(c.Request.Context(), ctrl.cartID(c), key)
	if err != nil {
		respondError(c, err, "Failed to remove item")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Item removed", Data: cart})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Success 200 {object} models.Response
// @Router /api/cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.carts.ClearCart(c.Request.Context(), ctrl.cartID(c)); err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart cleared"})
}
