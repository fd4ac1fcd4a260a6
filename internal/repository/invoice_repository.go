package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
)

// Querier is the subset of pgxpool.Pool (and pgx.Tx) the repositories use
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InvoiceRepository defines the interface for invoice data storage operations.
// Each mutation issues exactly one parameterized statement.
type InvoiceRepository interface {
	// CreateInvoice inserts the invoice and sets its store-assigned ID
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error

	// UpdateInvoice rewrites customer, amount and status of invoice.ID and
	// returns the number of rows affected. Zero rows is not an error.
	UpdateInvoice(ctx context.Context, invoice *domain.Invoice) (int64, error)

	// DeleteInvoice removes the invoice, or returns ErrInvoiceNotFound
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// GetInvoiceByID retrieves an invoice by its ID
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves one page of invoices matching filter.Query
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error)

	// GetCardData computes the dashboard overview totals
	GetCardData(ctx context.Context) (*domain.CardData, error)
}
