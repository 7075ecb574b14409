package controllers

import (
	"net/http"
	"strconv"

	"fashion-store/libs"
	"fashion-store/middleware"
	"fashion-store/models"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	products      *services.ProductService
	defaultLocale string
}

func NewProductController(products *services.ProductService, defaultLocale string) *ProductController {
	return &ProductController{products: products, defaultLocale: defaultLocale}
}

// @Summary Get all products
// @Description Get paginated list of active products localized by locale
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Param locale query string false "ar or en"
// @Success 200 {object} models.PaginationResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, limit := getPaginationParams(c, 12)
	locale := middleware.RequestLocale(c, ctrl.defaultLocale)

	products, meta, err := ctrl.products.GetAllProducts(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err, "Failed to load products")
		return
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, p.Localize(locale))
	}
	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    views,
		Meta:    meta,
	})
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.ProductView}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid product ID", nil)
		return
	}

	product, err := ctrl.products.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	locale := middleware.RequestLocale(c, ctrl.defaultLocale)
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product retrieved", Data: product.Localize(locale)})
}

// @Summary Create product
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	product, err := ctrl.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Product created", Data: product})
}

// @Summary Upload product image
// @Tags Admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/products/{id}/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid product ID", nil)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "Image file is required", err)
		return
	}
	if err := libs.ValidateImageFile(header); err != nil {
		badRequest(c, "Invalid image", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "Unable to read image", err)
		return
	}
	defer file.Close()

	imageURL, err := ctrl.products.UploadProductImage(c.Request.Context(), id, file, header.Filename)
	if err != nil {
		respondError(c, err, "Failed to upload image")
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Image uploaded", Data: gin.H{"image_url": imageURL}})
}
