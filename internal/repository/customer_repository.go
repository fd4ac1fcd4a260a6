package repository

import (
	"context"

	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
)

// CustomerRepository defines read access to customers
type CustomerRepository interface {
	// ListCustomers returns all customers ordered by name
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// CreateCustomer inserts a customer and sets its ID
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
}

// PostgresCustomerRepository implements CustomerRepository using PostgreSQL
type PostgresCustomerRepository struct {
	db Querier
}

// NewPostgresCustomerRepository creates a new PostgreSQL customer repository
func NewPostgresCustomerRepository(db Querier) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

// ListCustomers returns all customers ordered by name
func (r *PostgresCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, name, email, COALESCE(image_url, '')
		FROM customers
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, newPersistenceError("failed to query customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, newPersistenceError("failed to scan customer", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, newPersistenceError("error iterating customers", err)
	}

	return customers, nil
}

// CreateCustomer inserts a customer, skipping emails that already exist
func (r *PostgresCustomerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers (name, email, image_url)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id::text
	`, customer.Name, customer.Email, customer.ImageURL).Scan(&customer.ID)
	if err != nil {
		return newPersistenceError("failed to create customer", err)
	}
	return nil
}
