package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-system/internal/api/metrics"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer records.
type CustomerHandler struct {
	service  ports.CustomerService
	mediaURL string
}

func NewCustomerHandler(service ports.CustomerService, mediaURL string) *CustomerHandler {
	return &CustomerHandler{service: service, mediaURL: mediaURL}
}

// List handles GET /v1/customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring of name, email, phone or company"
// @Param        page    query     int     false  "1-based page number"
// @Success      200     {object}  customerListResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	search := strings.TrimSpace(c.QueryParam("search"))
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	result, err := h.service.List(c.Request().Context(), ports.ListCustomersInput{Search: search, Page: page})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerListResponse(result, search, h.mediaURL))
}

// Create handles POST /v1/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      customerRequest  true  "Customer fields"
// @Success      201   {object}  customerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.service.Create(c.Request().Context(), actor, toCustomerInput(req))
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.WithLabelValues("api").Inc()
	return c.JSON(http.StatusCreated, toCustomerResponse(customer, h.mediaURL))
}

// Get handles GET /v1/customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Customer id"
// @Success      200  {object}  customerResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	customer, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer, h.mediaURL))
}

// Update handles PUT /v1/customers/:id.
//
// @Summary      Edit a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Customer id"
// @Param        body  body      customerRequest  true  "Customer fields"
// @Success      200   {object}  customerResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.service.Update(c.Request().Context(), id, toCustomerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer, h.mediaURL))
}

// Delete handles DELETE /v1/customers/:id.
//
// @Summary      Delete a customer
// @Tags         customers
// @Security     BearerAuth
// @Param        id  path  int  true  "Customer id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage handles PUT /v1/customers/:id/image.
//
// @Summary      Replace a customer's image
// @Tags         customers
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int   true  "Customer id"
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  customerResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /v1/customers/{id}/image [put]
func (h *CustomerHandler) UploadImage(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	file, err := openFormFile(c, "image")
	if err != nil {
		return err
	}
	defer file.Close()

	customer, err := h.service.SetImage(c.Request().Context(), id, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer, h.mediaURL))
}
