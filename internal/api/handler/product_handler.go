package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prostore/catalog-api/internal/api/metrics"
	"github.com/prostore/catalog-api/internal/core/domain"
	"github.com/prostore/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products. Public; no auth check.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {object}  dataResponse
// @Failure      500  {object}  map[string]any
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: views})
}

// Create handles POST /api/products. The resolved account becomes the
// owner of the new listing.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), actor(c), ports.CreateProductInput{
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	})
	if err != nil {
		metrics.ProductMutationsTotal.WithLabelValues("create", mutationResult(err)).Inc()
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create", "success").Inc()
	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: product})
}

// Update handles PUT /api/products/:id. Fields absent from the body are
// left unchanged. Only the owner or an admin may update.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.Update(c.Request().Context(), actor(c), c.Param("id"), req.toPatch())
	if err != nil {
		metrics.ProductMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: product})
}

// Delete handles DELETE /api/products/:id. Returns a confirmation, not
// the deleted entity. Only the owner or an admin may delete.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Product ID"
// @Success      200  {object}  ackResponse
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		metrics.ProductMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete", "success").Inc()
	return c.JSON(http.StatusOK, ackResponse{Success: true, Message: "Product deleted successfully"})
}

func mutationResult(err error) string {
	if errors.Is(err, domain.ErrForbidden) {
		return "denied"
	}
	return "error"
}
