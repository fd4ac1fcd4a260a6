package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/navigation"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"go.uber.org/zap"
)

// InvoiceHandler handles HTTP requests for the invoice pages and mutations
type InvoiceHandler struct {
	invoices  service.InvoiceService
	dashboard service.DashboardService
	log       *zap.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices service.InvoiceService, dashboard service.DashboardService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoices:  invoices,
		dashboard: dashboard,
		log:       log,
	}
}

// RegisterRoutes registers the invoice routes on a dashboard group
func (h *InvoiceHandler) RegisterRoutes(dashboard *gin.RouterGroup) {
	invoices := dashboard.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/search", h.SearchInvoices)
		invoices.GET("/create", h.CreateForm)
		invoices.POST("", h.CreateInvoice)
		invoices.GET("/:id/edit", h.EditForm)
		invoices.POST("/:id", h.UpdateInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.POST("/:id/delete", h.DeleteInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
	}
}

// ListInvoices returns one page of invoices matching the search query
// @Summary List invoices
// @Description Get a page of invoices, newest first, filtered by a search term
// @Tags invoices
// @Produce json
// @Param query query string false "Search term matched against customer, amount, date and status"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} model.InvoicesListResponse "Page of invoices"
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /dashboard/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams)
		return
	}

	data, err := h.dashboard.InvoicesPage(c.Request.Context(), c.Query("query"), page)
	if err != nil {
		h.log.Error("Failed to list invoices", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondRenderedPage(c, data)
}

// SearchInvoices moves the listing to a new search term
// @Summary Search invoices
// @Description Redirects to the listing with query set to term and page reset to 1
// @Tags invoices
// @Param term query string false "Search term; blank clears the search"
// @Success 303 "Redirect to the filtered listing"
// @Router /dashboard/invoices/search [get]
func (h *InvoiceHandler) SearchInvoices(c *gin.Context) {
	params := c.Request.URL.Query()
	term := params.Get("term")
	params.Del("term")

	c.Redirect(StatusSeeOther, navigation.SearchLocation(navigation.InvoicesPath, params, term))
}

// CreateForm returns the data for the create invoice form
// @Summary Create invoice form
// @Tags invoices
// @Produce json
// @Success 200 {object} model.CreateFormResponse "Customer options"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /dashboard/invoices/create [get]
func (h *InvoiceHandler) CreateForm(c *gin.Context) {
	form, err := h.dashboard.CreateInvoiceForm(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load create form", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, form)
}

// EditForm returns the data for the edit invoice form
// @Summary Edit invoice form
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} model.EditFormResponse "Invoice values and customer options"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /dashboard/invoices/{id}/edit [get]
func (h *InvoiceHandler) EditForm(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	data, err := h.dashboard.EditInvoicePage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			respondNotFound(c, ErrInvoiceNotFound)
			return
		}
		h.log.Error("Failed to load edit form", zap.String("invoice_id", id), zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondRenderedPage(c, data)
}

// CreateInvoice creates an invoice from a form or JSON submission
// @Summary Create an invoice
// @Description Validates the submission, stores the invoice and redirects to the listing
// @Tags invoices
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param customerId formData string true "Customer ID"
// @Param amount formData string true "Amount in dollars"
// @Param status formData string true "pending or paid"
// @Success 303 "Redirect to /dashboard/invoices"
// @Failure 422 {object} model.FormState "Validation failed"
// @Failure 500 {object} model.FormState "Database error"
// @Router /dashboard/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	fields, err := formFields(c)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	respondOutcome(c, h.invoices.CreateInvoice(c.Request.Context(), fields))
}

// UpdateInvoice updates an invoice from a form or JSON submission
// @Summary Update an invoice
// @Description Validates the submission, updates the invoice and redirects to the listing
// @Tags invoices
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param customerId formData string true "Customer ID"
// @Param amount formData string true "Amount in dollars"
// @Param status formData string true "pending or paid"
// @Success 303 "Redirect to /dashboard/invoices"
// @Failure 422 {object} model.FormState "Validation failed"
// @Failure 500 {object} model.FormState "Database error"
// @Router /dashboard/invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	fields, err := formFields(c)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	respondOutcome(c, h.invoices.UpdateInvoice(c.Request.Context(), id, fields))
}

// DeleteInvoice deletes an invoice
// @Summary Delete an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 204 "Invoice deleted"
// @Failure 404 {object} model.FormState "Invoice not found"
// @Failure 500 {object} model.FormState "Database error"
// @Router /dashboard/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	respondOutcome(c, h.invoices.DeleteInvoice(c.Request.Context(), id))
}
