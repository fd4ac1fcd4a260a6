package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
)

const (
	defaultPageLimit = 6
	maxPageLimit     = 100
)

// invoiceSearchClause matches $1 against customer name and email and the
// invoice amount, date and status
const invoiceSearchClause = `
	WHERE customers.name ILIKE $1
		OR customers.email ILIKE $1
		OR invoices.amount::text ILIKE $1
		OR invoices.date::text ILIKE $1
		OR invoices.status ILIKE $1`

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db Querier
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db Querier) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db: db,
	}
}

// CreateInvoice saves a new invoice to the database
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, invoice.CustomerID, invoice.Amount, string(invoice.Status), invoice.Date.Time).Scan(&id)
	if err != nil {
		return newPersistenceError("failed to insert invoice", err)
	}

	invoice.ID = id
	return nil
}

// UpdateInvoice updates customer, amount and status of an existing invoice
func (r *PostgresInvoiceRepository) UpdateInvoice(ctx context.Context, invoice *domain.Invoice) (int64, error) {
	// A malformed id cannot match any row
	if _, err := uuid.Parse(invoice.ID); err != nil {
		return 0, nil
	}

	commandTag, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`, invoice.CustomerID, invoice.Amount, string(invoice.Status), invoice.ID)
	if err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, newPersistenceError("failed to update invoice", err)
	}

	return commandTag.RowsAffected(), nil
}

// DeleteInvoice deletes an invoice by its ID
func (r *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if _, err := uuid.Parse(invoiceID); err != nil {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}

	commandTag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, invoiceID)
	if err != nil {
		if isInvalidText(err) {
			return fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
		}
		return newPersistenceError("failed to delete invoice", err)
	}

	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}

	return nil
}

// GetInvoiceByID retrieves an invoice by its ID
func (r *PostgresInvoiceRepository) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if _, err := uuid.Parse(invoiceID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}

	var (
		invoice domain.Invoice
		status  string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id::text, customer_id::text, amount, status, date
		FROM invoices
		WHERE id = $1
	`, invoiceID).Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount, &status, &invoice.Date.Time)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
		}
		return nil, newPersistenceError("failed to get invoice", err)
	}

	invoice.Status = domain.InvoiceStatus(status)
	return &invoice, nil
}

// ListInvoices retrieves invoices matching the search term, newest first
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	result := &domain.PaginatedInvoices{
		Data:       []domain.InvoiceRow{},
		Pagination: domain.Pagination{},
	}

	// Set default pagination values if not provided
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	pattern := searchPattern(filter.Query)

	totalItems, err := r.countInvoices(ctx, pattern)
	if err != nil {
		return nil, err
	}

	result.Pagination.TotalItems = totalItems
	result.Pagination.Limit = filter.Limit
	result.Pagination.CurrentPage = filter.Page
	result.Pagination.TotalPages = pageCount(totalItems, filter.Limit)

	if totalItems == 0 {
		return result, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT invoices.id::text, invoices.customer_id::text, invoices.amount, invoices.status, invoices.date,
			customers.name, customers.email, COALESCE(customers.image_url, '')
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		%s
		ORDER BY invoices.date DESC, invoices.id
		LIMIT $2 OFFSET $3
	`, invoiceSearchClause)

	rows, err := r.db.Query(ctx, query, pattern, filter.Limit, offset)
	if err != nil {
		return nil, newPersistenceError("failed to query invoices", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row    domain.InvoiceRow
			status string
		)
		if err := rows.Scan(
			&row.ID, &row.CustomerID, &row.Amount, &status, &row.Date.Time,
			&row.CustomerName, &row.CustomerEmail, &row.ImageURL,
		); err != nil {
			return nil, newPersistenceError("failed to scan invoice", err)
		}
		row.Status = domain.InvoiceStatus(status)
		result.Data = append(result.Data, row)
	}

	if err := rows.Err(); err != nil {
		return nil, newPersistenceError("error iterating invoices", err)
	}

	return result, nil
}

func (r *PostgresInvoiceRepository) countInvoices(ctx context.Context, pattern string) (int, error) {
	var totalItems int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		%s
	`, invoiceSearchClause)
	if err := r.db.QueryRow(ctx, countQuery, pattern).Scan(&totalItems); err != nil {
		return 0, newPersistenceError("failed to count invoices", err)
	}
	return totalItems, nil
}

// GetCardData computes counts and paid/pending totals for the overview page
func (r *PostgresInvoiceRepository) GetCardData(ctx context.Context) (*domain.CardData, error) {
	var cards domain.CardData
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM customers),
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
		FROM invoices
	`).Scan(&cards.NumberOfInvoices, &cards.NumberOfCustomers, &cards.TotalPaid, &cards.TotalPending)
	if err != nil {
		return nil, newPersistenceError("failed to get card data", err)
	}

	return &cards, nil
}

func pageCount(totalItems, limit int) int {
	return int(math.Ceil(float64(totalItems) / float64(limit)))
}

func searchPattern(query string) string {
	return "%" + escapeLike(strings.TrimSpace(query)) + "%"
}

// escapeLike escapes LIKE wildcards so the term matches literally
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
