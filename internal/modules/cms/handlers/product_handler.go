package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ListProducts godoc
// @Summary List products
// @Description List catalog products newest first
// @Tags Products
// @Produce json
// @Param category query string false "Category (case-insensitive)"
// @Param search query string false "Search in name and description"
// @Success 200 {array} models.Product
// @Failure 500 {object} map[string]interface{}
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productService.ListProducts(c.UserContext(), models.ProductFilter{
		Category:   c.Query("category"),
		SearchTerm: c.Query("search"),
	})
	if err != nil {
		return respondError(c, err, "fetch products")
	}
	return c.JSON(products)
}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	product, err := h.productService.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "fetch product")
	}
	return c.JSON(product)
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a catalog product from JSON or form fields (requires authentication)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	product, err := h.productService.CreateProduct(c.UserContext(), auth.ActorFrom(c), &req)
	if err != nil {
		return respondError(c, err, "create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Partial update: absent fields keep their value (requires authentication)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	product, err := h.productService.UpdateProduct(c.UserContext(), auth.ActorFrom(c), id, &req)
	if err != nil {
		return respondError(c, err, "update product")
	}
	return c.JSON(product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.productService.DeleteProduct(c.UserContext(), auth.ActorFrom(c), id); err != nil {
		return respondError(c, err, "delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// GetProductQR godoc
// @Summary Product QR code
// @Description PNG QR code linking to the public product page, for printed swatch cards
// @Tags Products
// @Produce png
// @Param id path int true "Product ID"
// @Param size query int false "Image size in pixels (128-1024)"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/{id}/qr [get]
func (h *ProductHandler) GetProductQR(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	png, err := h.productService.QRCode(c.UserContext(), id, c.QueryInt("size", 256))
	if err != nil {
		return respondError(c, err, "generate QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(png)
}
