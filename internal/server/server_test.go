package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ridwanfathin/invoice-dashboard/internal/config"
	"github.com/ridwanfathin/invoice-dashboard/internal/metrics"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"github.com/ridwanfathin/invoice-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	mutationMetrics := metrics.NewMutationMetrics(registry)
	repo := testutil.NewInvoiceRepository()
	pageCache := testutil.NewPageCache()
	log := zap.NewNop()

	services := Services{
		Auth: service.NewAuthService(service.AuthServiceConfig{
			UserRepo:  testutil.NewUserRepository(),
			JWTSecret: "test-secret",
		}),
		Invoices: service.NewInvoiceService(service.InvoiceServiceConfig{
			Repo: repo, Cache: pageCache, Metrics: mutationMetrics, Logger: log,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceConfig{
			Invoices: repo, Customers: &testutil.CustomerRepository{}, Cache: pageCache, Metrics: mutationMetrics, Logger: log,
		}),
	}

	return NewServer(&config.Config{Port: 0}, services, registry, log)
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := serve(newTestServer(t), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	serve(s, http.MethodGet, "/login")

	w := serve(s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardRequiresSession(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/dashboard", "/dashboard/invoices", "/dashboard/invoices/create"} {
		w := serve(s, http.MethodGet, target)
		assert.Equal(t, http.StatusSeeOther, w.Code, target)
		assert.Contains(t, w.Header().Get("Location"), "/login?callbackUrl=")
	}

	w := serve(s, http.MethodPost, "/dashboard/invoices")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestPublicPages(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/login").Code)
	assert.Equal(t, http.StatusFound, serve(s, http.MethodGet, "/api-docs").Code)
	assert.Equal(t, http.StatusSeeOther, serve(s, http.MethodPost, "/logout").Code)
}
