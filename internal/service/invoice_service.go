package service

import (
	"context"
	"errors"
	"time"

	"github.com/ridwanfathin/invoice-dashboard/internal/cache"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/metrics"
	"github.com/ridwanfathin/invoice-dashboard/internal/model"
	"github.com/ridwanfathin/invoice-dashboard/internal/navigation"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard/internal/validation"
	"go.uber.org/zap"
)

// Messages shown in the form banner when a mutation does not complete
const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgCreateFailed        = "Database Error: Failed to Create Invoice."
	MsgUpdateFailed        = "Database Error: Failed to Update Invoice."
	MsgDeleteFailed        = "Database Error: Failed to Delete Invoice."
	MsgInvoiceNotFound     = "Invoice not found."
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// DefaultPersistTimeout bounds a single store call when none is configured
const DefaultPersistTimeout = 5 * time.Second

// InvoiceService runs invoice mutations: validate, persist, invalidate the
// listing cache, then redirect. Every call returns a terminal outcome.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, fields map[string]any) navigation.Outcome
	UpdateInvoice(ctx context.Context, id string, fields map[string]any) navigation.Outcome
	DeleteInvoice(ctx context.Context, id string) navigation.Outcome
}

// InvoiceServiceConfig holds the collaborators of the invoice service
type InvoiceServiceConfig struct {
	Repo           repository.InvoiceRepository
	Cache          cache.PageCache
	Navigator      *navigation.Controller
	Metrics        metrics.MutationMetrics
	Logger         *zap.Logger
	PersistTimeout time.Duration
	Now            func() time.Time
}

// invoiceService implements InvoiceService
type invoiceService struct {
	repo           repository.InvoiceRepository
	cache          cache.PageCache
	nav            *navigation.Controller
	metrics        metrics.MutationMetrics
	log            *zap.Logger
	persistTimeout time.Duration
	now            func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(config InvoiceServiceConfig) InvoiceService {
	s := &invoiceService{
		repo:           config.Repo,
		cache:          config.Cache,
		nav:            config.Navigator,
		metrics:        config.Metrics,
		log:            config.Logger,
		persistTimeout: config.PersistTimeout,
		now:            config.Now,
	}

	if s.nav == nil {
		s.nav = navigation.NewController(navigation.InvoicesPath)
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.persistTimeout <= 0 {
		s.persistTimeout = DefaultPersistTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}

	return s
}

// CreateInvoice validates fields and inserts a new invoice dated today
func (s *invoiceService) CreateInvoice(ctx context.Context, fields map[string]any) navigation.Outcome {
	result := validation.ParseInvoice(fields, MsgCreateMissingFields)
	if !result.Valid() {
		return s.rejected(opCreate, result.Failure())
	}

	input := result.Input()
	invoice := domain.NewInvoice(input.CustomerID, input.Amount, input.Status, s.now())

	err := s.persist(ctx, opCreate, func(ctx context.Context) error {
		return s.repo.CreateInvoice(ctx, invoice)
	})
	if err != nil {
		return s.persistFailed(opCreate, MsgCreateMissingFields, MsgCreateFailed, err)
	}

	s.log.Info("Invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("customer_id", invoice.CustomerID),
		zap.Int64("amount", invoice.Amount),
	)

	return s.redirect(ctx, opCreate)
}

// UpdateInvoice validates fields and rewrites customer, amount and status of
// invoice id. An id that matches nothing still redirects.
func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, fields map[string]any) navigation.Outcome {
	result := validation.ParseInvoice(fields, MsgUpdateMissingFields)
	if !result.Valid() {
		return s.rejected(opUpdate, result.Failure())
	}

	input := result.Input()
	invoice := &domain.Invoice{
		ID:         id,
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Status:     input.Status,
	}

	var rows int64
	err := s.persist(ctx, opUpdate, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.UpdateInvoice(ctx, invoice)
		return err
	})
	if err != nil {
		return s.persistFailed(opUpdate, MsgUpdateMissingFields, MsgUpdateFailed, err)
	}

	if rows == 0 {
		s.log.Info("Invoice update matched no rows", zap.String("invoice_id", id))
	} else {
		s.log.Info("Invoice updated", zap.String("invoice_id", id))
	}

	return s.redirect(ctx, opUpdate)
}

// DeleteInvoice removes invoice id. The caller stays on the listing; a
// failed or unmatched delete is reported and leaves the cache untouched.
func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) navigation.Outcome {
	err := s.persist(ctx, opDelete, func(ctx context.Context) error {
		return s.repo.DeleteInvoice(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			s.log.Warn("Invoice to delete not found", zap.String("invoice_id", id))
			s.metrics.IncMutation(opDelete, string(navigation.StagePersistFailed))
			return s.nav.Stay(navigation.StagePersistFailed, model.NewFormState(nil, MsgInvoiceNotFound), err)
		}
		return s.persistFailed(opDelete, "", MsgDeleteFailed, err)
	}

	s.log.Info("Invoice deleted", zap.String("invoice_id", id))
	s.invalidate(ctx, opDelete)
	s.metrics.IncMutation(opDelete, string(navigation.StageReturned))
	return s.nav.Returned()
}

// persist runs one store call under the persistence timeout
func (s *invoiceService) persist(ctx context.Context, op string, call func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	start := time.Now()
	err := call(ctx)
	s.metrics.ObservePersist(op, time.Since(start))
	return err
}

func (s *invoiceService) rejected(op string, failure *validation.Failure) navigation.Outcome {
	s.metrics.IncMutation(op, string(navigation.StageValidationFailed))
	return s.nav.Stay(navigation.StageValidationFailed, model.NewFormState(failure.Errors, failure.Message), nil)
}

// persistFailed turns a store error into an outcome. A reference to an
// unknown customer is reported against the customer field.
func (s *invoiceService) persistFailed(op, missingMsg, failedMsg string, err error) navigation.Outcome {
	if missingMsg != "" && errors.Is(err, repository.ErrCustomerNotFound) {
		s.log.Warn("Invoice references unknown customer", zap.String("operation", op), zap.Error(err))
		s.metrics.IncMutation(op, string(navigation.StageValidationFailed))
		errs := validation.FieldErrors{}
		errs.Add(validation.FieldCustomerID, validation.MsgSelectCustomer)
		return s.nav.Stay(navigation.StageValidationFailed, model.NewFormState(errs, missingMsg), err)
	}

	s.log.Error("Failed to persist invoice", zap.String("operation", op), zap.Error(err))
	s.metrics.IncMutation(op, string(navigation.StagePersistFailed))
	return s.nav.Stay(navigation.StagePersistFailed, model.NewFormState(nil, failedMsg), err)
}

func (s *invoiceService) redirect(ctx context.Context, op string) navigation.Outcome {
	s.invalidate(ctx, op)
	s.metrics.IncMutation(op, string(navigation.StageRedirected))
	return s.nav.Redirect()
}

// invalidate drops cached listing pages. The write is already committed,
// so a cache failure is logged and the mutation still succeeds.
func (s *invoiceService) invalidate(ctx context.Context, op string) {
	if s.cache == nil {
		return
	}
	path := s.nav.ListingPath()
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), path); err != nil {
		s.log.Warn("Failed to invalidate page cache",
			zap.String("operation", op),
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
