package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type seedInvoice struct {
	customerEmail string
	amount        string // dollars
	status        domain.InvoiceStatus
	date          string
}

var seedCustomers = []domain.Customer{
	{Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

var seedInvoices = []seedInvoice{
	{"evil@rabbit.com", "157.95", domain.InvoiceStatusPending, "2022-12-06"},
	{"delba@oliveira.com", "202.48", domain.InvoiceStatusPending, "2022-11-14"},
	{"lee@robinson.com", "302.40", domain.InvoiceStatusPaid, "2022-10-29"},
	{"michael@novotny.com", "448.00", domain.InvoiceStatusPaid, "2023-09-10"},
	{"amy@burns.com", "345.77", domain.InvoiceStatusPending, "2023-08-05"},
	{"balazs@orban.com", "542.46", domain.InvoiceStatusPaid, "2023-06-09"},
	{"evil@rabbit.com", "6.66", domain.InvoiceStatusPending, "2023-06-27"},
	{"lee@robinson.com", "89.45", domain.InvoiceStatusPaid, "2023-06-17"},
}

// buildSeedInvoices resolves customer emails to ids and amounts to cents
func buildSeedInvoices(customerIDs map[string]string) ([]domain.Invoice, error) {
	invoices := make([]domain.Invoice, 0, len(seedInvoices))
	for _, s := range seedInvoices {
		customerID, ok := customerIDs[s.customerEmail]
		if !ok {
			return nil, fmt.Errorf("no seeded customer with email %s", s.customerEmail)
		}
		amount, err := decimal.NewFromString(s.amount)
		if err != nil {
			return nil, fmt.Errorf("invalid seed amount %q: %w", s.amount, err)
		}
		date, err := time.Parse(domain.DateLayout, s.date)
		if err != nil {
			return nil, fmt.Errorf("invalid seed date %q: %w", s.date, err)
		}
		invoices = append(invoices, domain.Invoice{
			CustomerID: customerID,
			Amount:     domain.ToMinorUnits(amount),
			Status:     s.status,
			Date:       domain.DateOnly{Time: date},
		})
	}
	return invoices, nil
}

func newSeedCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
		withData bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a dashboard user and sample customers and invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			authService := service.NewAuthService(service.AuthServiceConfig{
				UserRepo: repository.NewPostgresUserRepository(e.db.GetPool()),
				Logger:   e.log,
			})
			user, err := authService.Register(ctx, email, password, name)
			switch {
			case errors.Is(err, service.ErrUserAlreadyExists):
				fmt.Fprintf(cmd.OutOrStdout(), "User %s already exists\n", email)
			case err != nil:
				return err
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s\n", user.Email)
			}

			if !withData {
				return nil
			}

			return e.db.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
				return seedSampleData(ctx, tx, e.log)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "user@nextmail.com", "email of the dashboard user")
	cmd.Flags().StringVar(&password, "password", "123456", "password of the dashboard user")
	cmd.Flags().StringVar(&name, "name", "User", "display name of the dashboard user")
	cmd.Flags().BoolVar(&withData, "sample-data", true, "also insert sample customers and invoices")
	return cmd
}

// seedSampleData upserts the sample customers and inserts their invoices
func seedSampleData(ctx context.Context, db repository.Querier, log *zap.Logger) error {
	customers := repository.NewPostgresCustomerRepository(db)
	invoices := repository.NewPostgresInvoiceRepository(db)

	customerIDs := make(map[string]string, len(seedCustomers))
	for _, c := range seedCustomers {
		customer := c
		if err := customers.CreateCustomer(ctx, &customer); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", customer.Email, err)
		}
		customerIDs[customer.Email] = customer.ID
	}

	rows, err := buildSeedInvoices(customerIDs)
	if err != nil {
		return err
	}
	for i := range rows {
		if err := invoices.CreateInvoice(ctx, &rows[i]); err != nil {
			return fmt.Errorf("failed to seed invoice: %w", err)
		}
	}

	log.Info("Seeded sample data", zap.Int("customers", len(customerIDs)), zap.Int("invoices", len(rows)))
	return nil
}
