// Package validation turns raw invoice form values into either a typed
// payload or a set of field errors.
package validation

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// Form field names as submitted by the dashboard
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Field error messages
const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgAmountTooLarge = "Please enter an amount no greater than $21,474,836.47."
	MsgSelectStatus   = "Please select an invoice status."
)

// FieldErrors maps a field name to its messages, in the order they were added
type FieldErrors map[string][]string

// Add appends a message for field
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field has at least one message
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// InvoiceInput is a validated invoice payload
type InvoiceInput struct {
	CustomerID string
	Amount     int64 // minor units
	Status     domain.InvoiceStatus
}

// Failure is the rejected side of a Result
type Failure struct {
	Errors  FieldErrors
	Message string
}

// Result holds exactly one of a validated input or a failure
type Result struct {
	input   *InvoiceInput
	failure *Failure
}

// Valid reports whether the result carries a validated input
func (r Result) Valid() bool {
	return r.input != nil
}

// Input returns the validated payload. It is the zero value on failure.
func (r Result) Input() InvoiceInput {
	if r.input == nil {
		return InvoiceInput{}
	}
	return *r.input
}

// Failure returns the field errors, or nil when the result is valid
func (r Result) Failure() *Failure {
	return r.failure
}

// ParseInvoice checks customer, amount and status. Values may be missing or
// of any type; coercion problems become field errors, never panics.
func ParseInvoice(fields map[string]any, message string) Result {
	errs := FieldErrors{}

	customerID, ok := parseCustomerID(fields[FieldCustomerID])
	if !ok {
		errs.Add(FieldCustomerID, MsgSelectCustomer)
	}

	amount, msg := parseAmount(fields[FieldAmount])
	if msg != "" {
		errs.Add(FieldAmount, msg)
	}

	status, ok := parseStatus(fields[FieldStatus])
	if !ok {
		errs.Add(FieldStatus, MsgSelectStatus)
	}

	if len(errs) > 0 {
		return Result{failure: &Failure{Errors: errs, Message: message}}
	}

	return Result{input: &InvoiceInput{
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
	}}
}

func parseCustomerID(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return s, true
}

// Bounds on textual amounts, checked before any scaling so that inputs such
// as "1e100000000" never reach big.Int arithmetic.
const (
	maxAmountLength   = 32
	minAmountExponent = -10
	maxAmountExponent = 12
)

var maxAmount = decimal.New(domain.MaxAmount, -2)

// parseAmount coerces v to a decimal and returns it in minor units, or the
// field message explaining the rejection.
func parseAmount(v any) (int64, string) {
	var (
		d  decimal.Decimal
		ok bool
	)

	switch n := v.(type) {
	case string:
		d, ok = parseAmountText(n)
	case json.Number:
		d, ok = parseAmountText(n.String())
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, MsgAmountPositive
		}
		d, ok = decimal.NewFromFloat(n), true
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, MsgAmountPositive
		}
		d, ok = decimal.NewFromFloat32(n), true
	case int:
		d, ok = decimal.NewFromInt(int64(n)), true
	case int64:
		d, ok = decimal.NewFromInt(n), true
	}
	if !ok {
		return 0, MsgAmountPositive
	}

	if !d.IsPositive() {
		return 0, MsgAmountPositive
	}
	if d.GreaterThan(maxAmount) {
		return 0, MsgAmountTooLarge
	}

	minor := domain.ToMinorUnits(d)
	if minor <= 0 {
		return 0, MsgAmountPositive
	}
	return minor, ""
}

func parseAmountText(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountLength {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, false
	}
	return d, true
}

func parseStatus(v any) (domain.InvoiceStatus, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	status := domain.InvoiceStatus(s)
	return status, status.Valid()
}
