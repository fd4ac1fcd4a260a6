package model

import (
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
)

// InvoiceResponse is one row of the invoice listing, with display amounts
type InvoiceResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customerId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"imageUrl,omitempty"`
	Amount        string `json:"amount"`
	AmountInCents int64  `json:"amountInCents"`
	Status        string `json:"status"`
	Date          string `json:"date"`
}

// InvoicesListResponse represents a paginated list of invoices
type InvoicesListResponse struct {
	Query      string             `json:"query"`
	Data       []InvoiceResponse  `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// InvoiceFormResponse is the data the edit form is pre-filled with.
// Amount is shown in dollars, as the user typed it.
type InvoiceFormResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// CustomerOption is one entry of the customer select box
type CustomerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateFormResponse carries the options for the create form
type CreateFormResponse struct {
	Customers []CustomerOption `json:"customers"`
}

// EditFormResponse carries the invoice and options for the edit form
type EditFormResponse struct {
	Invoice   InvoiceFormResponse `json:"invoice"`
	Customers []CustomerOption    `json:"customers"`
}

// CardsResponse holds the dashboard overview cards
type CardsResponse struct {
	NumberOfInvoices     int    `json:"numberOfInvoices"`
	NumberOfCustomers    int    `json:"numberOfCustomers"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

// FromDomain converts a listing row to its response form
func (r *InvoiceResponse) FromDomain(row domain.InvoiceRow) {
	r.ID = row.ID
	r.CustomerID = row.CustomerID
	r.Name = row.CustomerName
	r.Email = row.CustomerEmail
	r.ImageURL = row.ImageURL
	r.Amount = domain.FormatCurrency(row.Amount)
	r.AmountInCents = row.Amount
	r.Status = string(row.Status)
	r.Date = row.Date.Format(domain.DateLayout)
}

// FromDomain converts an invoice into edit form values
func (r *InvoiceFormResponse) FromDomain(invoice *domain.Invoice) {
	r.ID = invoice.ID
	r.CustomerID = invoice.CustomerID
	r.Amount = domain.FormatAmount(invoice.Amount)
	r.Status = string(invoice.Status)
	r.Date = invoice.Date.Format(domain.DateLayout)
}

// NewInvoicesListResponse converts a page of invoices into its response form
func NewInvoicesListResponse(query string, page *domain.PaginatedInvoices) InvoicesListResponse {
	resp := InvoicesListResponse{
		Query: query,
		Data:  make([]InvoiceResponse, len(page.Data)),
		Pagination: PaginationResponse{
			TotalItems:  page.Pagination.TotalItems,
			TotalPages:  page.Pagination.TotalPages,
			CurrentPage: page.Pagination.CurrentPage,
			Limit:       page.Pagination.Limit,
		},
	}
	for i, row := range page.Data {
		resp.Data[i].FromDomain(row)
	}
	return resp
}

// NewCustomerOptions converts customers into select options
func NewCustomerOptions(customers []domain.Customer) []CustomerOption {
	options := make([]CustomerOption, len(customers))
	for i, c := range customers {
		options[i] = CustomerOption{ID: c.ID, Name: c.Name}
	}
	return options
}

// NewCardsResponse formats the overview totals for display
func NewCardsResponse(cards *domain.CardData) CardsResponse {
	return CardsResponse{
		NumberOfInvoices:     cards.NumberOfInvoices,
		NumberOfCustomers:    cards.NumberOfCustomers,
		TotalPaidInvoices:    domain.FormatCurrency(cards.TotalPaid),
		TotalPendingInvoices: domain.FormatCurrency(cards.TotalPending),
	}
}
