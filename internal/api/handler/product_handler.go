package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/marketplace-api/internal/api/metrics"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create adds a product to the catalog.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  Envelope{data=productEnvelope}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.products.CreateProduct(c.Request().Context(), toCreateProductInput(req))
	if err != nil {
		return err
	}
	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()

	return success(c, http.StatusCreated, "Product created successfully", productEnvelope{
		Product: toProductResponse(product),
	})
}

// List returns the whole catalog, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  Envelope{data=productListResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Products retrieved successfully", toProductListResponse(products))
}

// Get returns a single product.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  Envelope{data=productEnvelope}
// @Failure      404  {object}  Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Product retrieved successfully", productEnvelope{
		Product: toProductResponse(product),
	})
}

// Update applies a partial update; only supplied fields change.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{data=productEnvelope}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.products.UpdateProduct(c.Request().Context(), c.Param("id"), toUpdateProductInput(req))
	if err != nil {
		return err
	}
	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()

	return success(c, http.StatusOK, "Product updated successfully", productEnvelope{
		Product: toProductResponse(product),
	})
}

// Delete removes a product permanently.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()

	return success(c, http.StatusOK, "Product deleted successfully", nil)
}
