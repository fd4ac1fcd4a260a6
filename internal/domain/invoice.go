package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateOnly is a custom type for handling date-only strings in JSON
type DateOnly struct {
	time.Time
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(DateLayout))
}

// DateLayout is the calendar date format stored in the invoices table
const DateLayout = "2006-01-02"

// InvoiceStatus is the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known statuses
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice represents the core domain entity for an invoice.
// Amount is kept in minor units (cents).
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customerId"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       DateOnly      `json:"date"`
}

// NewInvoice creates an invoice dated on the UTC calendar day of now
func NewInvoice(customerID string, amount int64, status InvoiceStatus, now time.Time) *Invoice {
	return &Invoice{
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
		Date:       DateOnly{Time: TruncateToDate(now)},
	}
}

// TruncateToDate drops the time of day, keeping the UTC calendar date
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MaxAmount is the largest invoice amount in minor units; invoices.amount is
// a Postgres INT
const MaxAmount int64 = math.MaxInt32

// ToMinorUnits scales a decimal amount by 100 and rounds to the nearest cent
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FormatAmount renders minor units back as a decimal string, e.g. 1234 -> "12.34"
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// FormatCurrency renders minor units as US dollars with thousands
// separators, e.g. 123456 -> "$1,234.56"
func FormatCurrency(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	amount := FormatAmount(minor)
	dot := strings.IndexByte(amount, '.')
	whole, cents := amount[:dot], amount[dot:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + cents
}
