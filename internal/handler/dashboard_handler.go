package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the overview and customer pages
type DashboardHandler struct {
	dashboard service.DashboardService
	log       *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

// RegisterRoutes registers the overview routes on a dashboard group
func (h *DashboardHandler) RegisterRoutes(dashboard *gin.RouterGroup) {
	dashboard.GET("", h.Overview)
	dashboard.GET("/customers", h.Customers)
}

// Overview returns the dashboard cards
// @Summary Dashboard overview
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.CardsResponse "Invoice and customer totals"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	cards, err := h.dashboard.Cards(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load dashboard cards", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, cards)
}

// Customers returns every customer
// @Summary List customers
// @Tags dashboard
// @Produce json
// @Success 200 {array} model.CustomerOption "Customers"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /dashboard/customers [get]
func (h *DashboardHandler) Customers(c *gin.Context) {
	customers, err := h.dashboard.Customers(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load customers", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, customers)
}
