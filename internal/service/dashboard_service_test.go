package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/model"
	"github.com/ridwanfathin/invoice-dashboard/internal/navigation"
	"github.com/ridwanfathin/invoice-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	invoices  *testutil.InvoiceRepository
	customers *testutil.CustomerRepository
	cache     *testutil.PageCache
	metrics   *testutil.Metrics
	svc       DashboardService
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	f := &dashboardFixture{
		invoices: testutil.NewInvoiceRepository(),
		customers: &testutil.CustomerRepository{Customers: []domain.Customer{
			{ID: customerID, Name: "Delba de Oliveira", Email: "delba@oliveira.com"},
		}},
		cache:   testutil.NewPageCache(),
		metrics: testutil.NewMetrics(),
	}
	f.invoices.Rows = []domain.InvoiceRow{
		{ID: invoiceID, CustomerID: customerID, Amount: 15795, Status: domain.InvoiceStatusPending,
			Date: domain.DateOnly{Time: time.Date(2022, 12, 6, 0, 0, 0, 0, time.UTC)},
			CustomerName: "Delba de Oliveira", CustomerEmail: "delba@oliveira.com"},
	}
	f.svc = NewDashboardService(DashboardServiceConfig{
		Invoices:     f.invoices,
		Customers:    f.customers,
		Cache:        f.cache,
		Metrics:      f.metrics,
		ItemsPerPage: 6,
	})
	return f
}

func TestInvoicesPage_CachesUntilInvalidated(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	first, err := f.svc.InvoicesPage(ctx, "delba", 1)
	require.NoError(t, err)

	var page model.InvoicesListResponse
	require.NoError(t, json.Unmarshal(first, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "$157.95", page.Data[0].Amount)
	assert.Equal(t, "delba", page.Query)

	second, err := f.svc.InvoicesPage(ctx, "delba", 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, f.invoices.ListFilters, 1)
	assert.Equal(t, 1, f.metrics.Hits)
	assert.Equal(t, 1, f.metrics.Misses)

	require.NoError(t, f.cache.Invalidate(ctx, navigation.InvoicesPath))

	_, err = f.svc.InvoicesPage(ctx, "delba", 1)
	require.NoError(t, err)
	assert.Len(t, f.invoices.ListFilters, 2)
}

// invalidatingInvoiceRepository runs beforeReturn after rows are loaded,
// standing in for a mutation that commits while the page renders
type invalidatingInvoiceRepository struct {
	*testutil.InvoiceRepository
	beforeReturn func()
}

func (r *invalidatingInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	page, err := r.InvoiceRepository.ListInvoices(ctx, filter)
	if r.beforeReturn != nil {
		r.beforeReturn()
		r.beforeReturn = nil
	}
	return page, err
}

func TestInvoicesPage_DoesNotCacheRowsReadBeforeInvalidation(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	repo := &invalidatingInvoiceRepository{InvoiceRepository: f.invoices}
	repo.beforeReturn = func() {
		f.invoices.Rows[0].CustomerName = "New Row"
		require.NoError(t, f.cache.Invalidate(ctx, navigation.InvoicesPath))
	}
	svc := NewDashboardService(DashboardServiceConfig{
		Invoices:  repo,
		Customers: f.customers,
		Cache:     f.cache,
		Metrics:   f.metrics,
	})

	f.invoices.Rows[0].CustomerName = "Old Row"
	first, err := svc.InvoicesPage(ctx, "", 1)
	require.NoError(t, err)
	assert.Contains(t, string(first), "Old Row")

	next, err := svc.InvoicesPage(ctx, "", 1)
	require.NoError(t, err)
	assert.Contains(t, string(next), "New Row")
	assert.NotContains(t, string(next), "Old Row")
	assert.Len(t, f.invoices.ListFilters, 2)
}

func TestInvoicesPage_NormalizesPage(t *testing.T) {
	f := newDashboardFixture(t)

	_, err := f.svc.InvoicesPage(context.Background(), "  ", 0)
	require.NoError(t, err)

	require.Len(t, f.invoices.ListFilters, 1)
	assert.Equal(t, domain.InvoiceFilter{Query: "", Page: 1, Limit: 6}, f.invoices.ListFilters[0])
}

func TestInvoicesPage_StoreError(t *testing.T) {
	f := newDashboardFixture(t)
	f.invoices.ReadErr = errors.New("boom")

	_, err := f.svc.InvoicesPage(context.Background(), "", 1)
	assert.Error(t, err)
	assert.Zero(t, f.cache.Len())
}

func TestInvoicesPage_CacheReadErrorRendersFresh(t *testing.T) {
	f := newDashboardFixture(t)
	f.cache.GetErr = errors.New("redis down")

	data, err := f.svc.InvoicesPage(context.Background(), "", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestEditInvoicePage(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()
	f.invoices.Put(domain.Invoice{ID: invoiceID, CustomerID: customerID, Amount: 1234, Status: domain.InvoiceStatusPaid})

	data, err := f.svc.EditInvoicePage(ctx, invoiceID)
	require.NoError(t, err)

	var form model.EditFormResponse
	require.NoError(t, json.Unmarshal(data, &form))
	assert.Equal(t, "12.34", form.Invoice.Amount)
	assert.Equal(t, "paid", form.Invoice.Status)
	require.Len(t, form.Customers, 1)

	// the edit page sits under the listing path
	require.NoError(t, f.cache.Invalidate(ctx, navigation.InvoicesPath))
	assert.Zero(t, f.cache.Len())
}

func TestEditInvoicePage_NotFound(t *testing.T) {
	f := newDashboardFixture(t)

	_, err := f.svc.EditInvoicePage(context.Background(), invoiceID)
	assert.Error(t, err)
}

func TestCardsAndCustomers(t *testing.T) {
	f := newDashboardFixture(t)
	f.invoices.Cards = domain.CardData{NumberOfInvoices: 3, NumberOfCustomers: 1, TotalPaid: 100050, TotalPending: 20}

	cards, err := f.svc.Cards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$1,000.50", cards.TotalPaidInvoices)
	assert.Equal(t, "$0.20", cards.TotalPendingInvoices)

	form, err := f.svc.CreateInvoiceForm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.CustomerOption{{ID: customerID, Name: "Delba de Oliveira"}}, form.Customers)

	f.customers.Err = errors.New("boom")
	_, err = f.svc.Customers(context.Background())
	assert.Error(t, err)
}
