package domain

// Customer is the party an invoice is billed to
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// InvoiceRow is an invoice joined with its customer for the listing table
type InvoiceRow struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	Amount        int64         `json:"amount"`
	Status        InvoiceStatus `json:"status"`
	Date          DateOnly      `json:"date"`
	CustomerName  string        `json:"name"`
	CustomerEmail string        `json:"email"`
	ImageURL      string        `json:"imageUrl,omitempty"`
}

// InvoiceFilter represents filters for querying invoices
type InvoiceFilter struct {
	Query string
	Page  int
	Limit int
}

// Pagination represents pagination metadata
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// PaginatedInvoices represents one page of the invoice listing
type PaginatedInvoices struct {
	Data       []InvoiceRow `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// CardData holds the dashboard overview totals. Amounts are minor units.
type CardData struct {
	NumberOfInvoices  int   `json:"numberOfInvoices"`
	NumberOfCustomers int   `json:"numberOfCustomers"`
	TotalPaid         int64 `json:"totalPaid"`
	TotalPending      int64 `json:"totalPending"`
}
