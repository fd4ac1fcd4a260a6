package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ridwanfathin/invoice-dashboard/internal/cache"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/metrics"
	"github.com/ridwanfathin/invoice-dashboard/internal/model"
	"github.com/ridwanfathin/invoice-dashboard/internal/navigation"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
	"go.uber.org/zap"
)

// DashboardService serves the read side of the dashboard. Invoice listing
// and edit form pages are rendered once and kept in the page cache until
// an invoice mutation invalidates them.
type DashboardService interface {
	InvoicesPage(ctx context.Context, query string, page int) ([]byte, error)
	EditInvoicePage(ctx context.Context, id string) ([]byte, error)
	CreateInvoiceForm(ctx context.Context) (*model.CreateFormResponse, error)
	Cards(ctx context.Context) (*model.CardsResponse, error)
	Customers(ctx context.Context) ([]model.CustomerOption, error)
}

// DashboardServiceConfig holds the collaborators of the dashboard service
type DashboardServiceConfig struct {
	Invoices     repository.InvoiceRepository
	Customers    repository.CustomerRepository
	Cache        cache.PageCache
	Metrics      metrics.MutationMetrics
	Logger       *zap.Logger
	ItemsPerPage int
}

// dashboardService implements DashboardService
type dashboardService struct {
	invoices     repository.InvoiceRepository
	customers    repository.CustomerRepository
	cache        cache.PageCache
	metrics      metrics.MutationMetrics
	log          *zap.Logger
	itemsPerPage int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(config DashboardServiceConfig) DashboardService {
	s := &dashboardService{
		invoices:     config.Invoices,
		customers:    config.Customers,
		cache:        config.Cache,
		metrics:      config.Metrics,
		log:          config.Logger,
		itemsPerPage: config.ItemsPerPage,
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.itemsPerPage <= 0 {
		s.itemsPerPage = 6
	}
	return s
}

// InvoicesPage returns the rendered listing for a search term and page
func (s *dashboardService) InvoicesPage(ctx context.Context, query string, page int) ([]byte, error) {
	query = strings.TrimSpace(query)
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if query != "" {
		params.Set("query", query)
	}
	key := cache.Key(navigation.InvoicesPath, params.Encode())

	return s.cached(ctx, key, func() (any, error) {
		invoices, err := s.invoices.ListInvoices(ctx, domain.InvoiceFilter{
			Query: query,
			Page:  page,
			Limit: s.itemsPerPage,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list invoices: %w", err)
		}
		return model.NewInvoicesListResponse(query, invoices), nil
	})
}

// EditInvoicePage returns the rendered edit form for invoice id. The page
// lives under the listing path so invoice mutations invalidate it too.
func (s *dashboardService) EditInvoicePage(ctx context.Context, id string) ([]byte, error) {
	key := cache.Key(navigation.InvoicesPath+"/"+url.PathEscape(id)+"/edit", "")

	return s.cached(ctx, key, func() (any, error) {
		invoice, err := s.invoices.GetInvoiceByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get invoice: %w", err)
		}
		customers, err := s.customers.ListCustomers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list customers: %w", err)
		}

		var form model.InvoiceFormResponse
		form.FromDomain(invoice)
		return model.EditFormResponse{
			Invoice:   form,
			Customers: model.NewCustomerOptions(customers),
		}, nil
	})
}

// CreateInvoiceForm returns the customer options for a new invoice
func (s *dashboardService) CreateInvoiceForm(ctx context.Context) (*model.CreateFormResponse, error) {
	customers, err := s.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return &model.CreateFormResponse{Customers: customers}, nil
}

// Cards returns the overview totals
func (s *dashboardService) Cards(ctx context.Context) (*model.CardsResponse, error) {
	cards, err := s.invoices.GetCardData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get card data: %w", err)
	}
	resp := model.NewCardsResponse(cards)
	return &resp, nil
}

// Customers returns every customer as a select option
func (s *dashboardService) Customers(ctx context.Context) ([]model.CustomerOption, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return model.NewCustomerOptions(customers), nil
}

// cached serves key from the page cache, rendering and storing it on a
// miss. Cache errors degrade to an uncached render. The generation is taken
// before rendering so a page built from rows read ahead of a concurrent
// invalidation is dropped instead of stored.
func (s *dashboardService) cached(ctx context.Context, key string, render func() (any, error)) ([]byte, error) {
	var (
		generation int64
		cacheable  = s.cache != nil
	)
	if cacheable {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("Page cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.IncCacheLookup(ok)
		if ok {
			return data, nil
		}

		if generation, err = s.cache.Generation(ctx); err != nil {
			s.log.Warn("Page cache generation read failed", zap.String("key", key), zap.Error(err))
			cacheable = false
		}
	}

	value, err := render()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	if cacheable {
		switch err := s.cache.Set(ctx, key, data, generation); {
		case errors.Is(err, cache.ErrStale):
			s.log.Debug("Skipped caching page rendered before an invalidation", zap.String("key", key))
		case err != nil:
			s.log.Warn("Page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return data, nil
}
