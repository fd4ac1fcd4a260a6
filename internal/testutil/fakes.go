// Package testutil holds in-memory stand-ins for the repositories and the
// page cache, recording every call so tests can assert on side effects.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
)

// InvoiceRepository is a fake repository.InvoiceRepository
type InvoiceRepository struct {
	mu sync.Mutex

	Invoices map[string]*domain.Invoice
	Rows     []domain.InvoiceRow
	Cards    domain.CardData

	CreateErr error
	UpdateErr error
	DeleteErr error
	ReadErr   error

	Created     []domain.Invoice
	Updated     []domain.Invoice
	Deleted     []string
	ListFilters []domain.InvoiceFilter

	// OnWrite, when set, runs with the context of every write call
	OnWrite func(ctx context.Context)

	nextID int
}

// NewInvoiceRepository creates an empty fake
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{Invoices: map[string]*domain.Invoice{}}
}

// Put stores invoice as if it already existed
func (r *InvoiceRepository) Put(invoice domain.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Invoices[invoice.ID] = &invoice
}

// WriteCalls counts create, update and delete calls
func (r *InvoiceRepository) WriteCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Created) + len(r.Updated) + len(r.Deleted)
}

func (r *InvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.OnWrite != nil {
		r.OnWrite(ctx)
	}
	r.Created = append(r.Created, *invoice)
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.nextID++
	invoice.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", r.nextID)
	stored := *invoice
	r.Invoices[invoice.ID] = &stored
	return nil
}

func (r *InvoiceRepository) UpdateInvoice(ctx context.Context, invoice *domain.Invoice) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.OnWrite != nil {
		r.OnWrite(ctx)
	}
	r.Updated = append(r.Updated, *invoice)
	if r.UpdateErr != nil {
		return 0, r.UpdateErr
	}
	existing, ok := r.Invoices[invoice.ID]
	if !ok {
		return 0, nil
	}
	existing.CustomerID = invoice.CustomerID
	existing.Amount = invoice.Amount
	existing.Status = invoice.Status
	return 1, nil
}

func (r *InvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.OnWrite != nil {
		r.OnWrite(ctx)
	}
	r.Deleted = append(r.Deleted, invoiceID)
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	if _, ok := r.Invoices[invoiceID]; !ok {
		return fmt.Errorf("%w: %s", repository.ErrInvoiceNotFound, invoiceID)
	}
	delete(r.Invoices, invoiceID)
	return nil
}

func (r *InvoiceRepository) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ReadErr != nil {
		return nil, r.ReadErr
	}
	invoice, ok := r.Invoices[invoiceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrInvoiceNotFound, invoiceID)
	}
	found := *invoice
	return &found, nil
}

func (r *InvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ListFilters = append(r.ListFilters, filter)
	if r.ReadErr != nil {
		return nil, r.ReadErr
	}

	matched := []domain.InvoiceRow{}
	term := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, row := range r.Rows {
		if term == "" || strings.Contains(strings.ToLower(row.CustomerName), term) ||
			strings.Contains(strings.ToLower(row.CustomerEmail), term) ||
			strings.Contains(string(row.Status), term) {
			matched = append(matched, row)
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 6
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	end := start + limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return &domain.PaginatedInvoices{
		Data: matched[start:end],
		Pagination: domain.Pagination{
			TotalItems:  len(matched),
			TotalPages:  (len(matched) + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		},
	}, nil
}

func (r *InvoiceRepository) GetCardData(ctx context.Context) (*domain.CardData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ReadErr != nil {
		return nil, r.ReadErr
	}
	cards := r.Cards
	return &cards, nil
}

// CustomerRepository is a fake repository.CustomerRepository
type CustomerRepository struct {
	Customers []domain.Customer
	Err       error
}

func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]domain.Customer{}, r.Customers...), nil
}

func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if r.Err != nil {
		return r.Err
	}
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("00000000-0000-4000-9000-%012d", len(r.Customers)+1)
	}
	r.Customers = append(r.Customers, *customer)
	return nil
}

// UserRepository is a fake repository.UserRepository keyed by email
type UserRepository struct {
	Users map[string]*domain.User
	Err   error
}

// NewUserRepository creates a fake holding users
func NewUserRepository(users ...*domain.User) *UserRepository {
	r := &UserRepository{Users: map[string]*domain.User{}}
	for _, u := range users {
		r.Users[u.Email] = u
	}
	return r
}

func (r *UserRepository) CreateUserWithPassword(ctx context.Context, user *domain.User) error {
	if r.Err != nil {
		return r.Err
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("00000000-0000-4000-a000-%012d", len(r.Users)+1)
	}
	r.Users[user.Email] = user
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.Users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepository) GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.Users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}
