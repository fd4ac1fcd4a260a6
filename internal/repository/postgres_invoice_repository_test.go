package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	invoiceID  = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
	customerID = "3958dc9e-712f-4377-85e9-fec4b6a6442a"
)

type statement struct {
	sql  string
	args []any
}

// fakeQuerier records statements and answers with canned results
type fakeQuerier struct {
	statements []statement
	execTag    string
	execErr    error
	row        fakeRow
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.statements = append(q.statements, statement{sql: sql, args: args})
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	return pgconn.NewCommandTag(q.execTag), nil
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.statements = append(q.statements, statement{sql: sql, args: args})
	return nil, errors.New("query not supported by fake")
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.statements = append(q.statements, statement{sql: sql, args: args})
	return q.row
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.scan(dest...)
}

func TestCreateInvoice(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*string) = invoiceID
		return nil
	}}}
	repo := NewPostgresInvoiceRepository(q)

	inv := domain.NewInvoice(customerID, 1234, domain.InvoiceStatusPending, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.CreateInvoice(context.Background(), inv))

	assert.Equal(t, invoiceID, inv.ID)
	require.Len(t, q.statements, 1)
	assert.Contains(t, q.statements[0].sql, "INSERT INTO invoices (customer_id, amount, status, date)")
	assert.Equal(t, []any{customerID, int64(1234), "pending", inv.Date.Time}, q.statements[0].args)
}

func TestCreateInvoiceForeignKeyViolation(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{scan: func(...any) error {
		return &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	}}}
	repo := NewPostgresInvoiceRepository(q)

	err := repo.CreateInvoice(context.Background(), domain.NewInvoice(customerID, 100, domain.InvoiceStatusPaid, time.Now()))
	require.Error(t, err)
	assert.True(t, IsPersistenceError(err))
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCreateInvoiceConnectionError(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{scan: func(...any) error {
		return errors.New("connection refused")
	}}}
	repo := NewPostgresInvoiceRepository(q)

	err := repo.CreateInvoice(context.Background(), domain.NewInvoice(customerID, 100, domain.InvoiceStatusPaid, time.Now()))
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "failed to insert invoice", pe.Op)
	assert.NotErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdateInvoice(t *testing.T) {
	q := &fakeQuerier{execTag: "UPDATE 1"}
	repo := NewPostgresInvoiceRepository(q)

	n, err := repo.UpdateInvoice(context.Background(), &domain.Invoice{
		ID:         invoiceID,
		CustomerID: customerID,
		Amount:     500,
		Status:     domain.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, q.statements, 1)
	assert.True(t, strings.Contains(q.statements[0].sql, "UPDATE invoices"))
	assert.Equal(t, []any{customerID, int64(500), "paid", invoiceID}, q.statements[0].args)
}

func TestUpdateInvoiceMissingRow(t *testing.T) {
	q := &fakeQuerier{execTag: "UPDATE 0"}
	repo := NewPostgresInvoiceRepository(q)

	n, err := repo.UpdateInvoice(context.Background(), &domain.Invoice{ID: invoiceID, CustomerID: customerID, Amount: 1, Status: domain.InvoiceStatusPaid})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdateInvoiceMalformedID(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewPostgresInvoiceRepository(q)

	n, err := repo.UpdateInvoice(context.Background(), &domain.Invoice{ID: "not-a-uuid"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, q.statements)
}

func TestDeleteInvoice(t *testing.T) {
	q := &fakeQuerier{execTag: "DELETE 1"}
	repo := NewPostgresInvoiceRepository(q)

	require.NoError(t, repo.DeleteInvoice(context.Background(), invoiceID))
	require.Len(t, q.statements, 1)
	assert.Equal(t, "DELETE FROM invoices WHERE id = $1", q.statements[0].sql)
	assert.Equal(t, []any{invoiceID}, q.statements[0].args)
}

func TestDeleteInvoiceNotFound(t *testing.T) {
	q := &fakeQuerier{execTag: "DELETE 0"}
	repo := NewPostgresInvoiceRepository(q)

	err := repo.DeleteInvoice(context.Background(), invoiceID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	assert.False(t, IsPersistenceError(err))
}

func TestDeleteInvoiceStoreError(t *testing.T) {
	q := &fakeQuerier{execErr: errors.New("connection reset")}
	repo := NewPostgresInvoiceRepository(q)

	err := repo.DeleteInvoice(context.Background(), invoiceID)
	assert.True(t, IsPersistenceError(err))
	assert.NotErrorIs(t, err, ErrInvoiceNotFound)
}

func TestGetInvoiceByIDNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	repo := NewPostgresInvoiceRepository(q)

	_, err := repo.GetInvoiceByID(context.Background(), invoiceID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "lee", escapeLike("lee"))
}
