package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"fatture/internal/amqp"
	"fatture/internal/core"
)

// InvoiceStore is the slice of the storage layer the mutation path needs.
type InvoiceStore interface {
	InsertInvoice(ctx context.Context, inv core.Invoice) error
	UpdateInvoice(ctx context.Context, id string, in core.InvoiceInput) error
	DeleteInvoice(ctx context.Context, id string) error
}

// EventPublisher announces invoice changes to interested consumers.
type EventPublisher interface {
	PublishInvoiceEvent(ctx context.Context, action amqp.InvoiceAction, invoiceID string) error
}

// MutationResult is returned to the form when a create or update cannot
// proceed: per-field validation messages, or a single store-failure message.
// A nil result means the mutation succeeded.
type MutationResult struct {
	Errors  core.FieldErrors
	Message string
}

// User-facing mutation failure messages.
const (
	MsgCreateMissing = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissing = "Missing Fields. Failed to Update Invoice."
	MsgCreateDBError = "Database Error: Failed to Create Invoice."
	MsgUpdateDBError = "Database Error: Failed to Update Invoice."
)

// InvoiceService runs the three invoice write operations: validate the form,
// execute a single store statement, publish a best-effort change event.
type InvoiceService struct {
	store  InvoiceStore
	events EventPublisher
}

func NewInvoiceService(store InvoiceStore, events EventPublisher) *InvoiceService {
	return &InvoiceService{
		store:  store,
		events: events,
	}
}

// Create validates the submitted form and inserts a new invoice. Validation
// failures and store failures both come back as a MutationResult so the form
// can re-render in place; the store is never touched on bad input.
func (s *InvoiceService) Create(ctx context.Context, form map[string]string) *MutationResult {
	in, errs := core.ParseInvoiceForm(form)
	if errs != nil {
		return &MutationResult{Errors: errs, Message: MsgCreateMissing}
	}

	inv := core.Invoice{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Amount:     core.Money{Cents: in.Cents},
		Status:     in.Status,
		Date:       core.Today(),
	}
	if err := s.store.InsertInvoice(ctx, inv); err != nil {
		slog.ErrorContext(ctx, "Invoice insert failed", "error", err, "customer_id", in.CustomerID)
		return &MutationResult{Message: MsgCreateDBError}
	}

	s.publish(ctx, amqp.InvoiceCreated, inv.ID)
	return nil
}

// Update validates the submitted form and rewrites the invoice's editable
// fields. The issue date is not re-supplied and never changes.
func (s *InvoiceService) Update(ctx context.Context, id string, form map[string]string) *MutationResult {
	in, errs := core.ParseInvoiceForm(form)
	if errs != nil {
		return &MutationResult{Errors: errs, Message: MsgUpdateMissing}
	}

	if err := s.store.UpdateInvoice(ctx, id, in); err != nil {
		slog.ErrorContext(ctx, "Invoice update failed", "error", err, "id", id)
		return &MutationResult{Message: MsgUpdateDBError}
	}

	s.publish(ctx, amqp.InvoiceUpdated, id)
	return nil
}

// Delete removes an invoice by id. Unlike create and update, store failures
// propagate: deletion happens from the listing, not from a form that could
// re-render a message.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return core.ErrEmptyInvoiceID
	}

	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, amqp.InvoiceDeleted, id)
	return nil
}

// publish is best effort: the invoice is already persisted, so event failures
// are logged and swallowed.
func (s *InvoiceService) publish(ctx context.Context, action amqp.InvoiceAction, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishInvoiceEvent(ctx, action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish invoice event",
			"error", err, "action", action, "invoice_id", id)
	}
}
