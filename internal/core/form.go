package core

import "strings"

// FieldErrors maps a form field name to its human-readable validation
// messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// InvoiceInput is the validated, typed result of parsing an invoice form.
type InvoiceInput struct {
	CustomerID string
	Cents      int64
	Status     InvoiceStatus
}

// Form field names as they appear in the submitted invoice form.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Validation messages surfaced next to the offending form field.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountRange    = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

// ParseInvoiceForm validates a raw form-field map and returns either a typed
// input or the per-field validation messages. The store is never touched
// here; a non-nil FieldErrors means the caller must re-render the form.
//
// Status defaults to pending when the field is absent or blank.
func ParseInvoiceForm(form map[string]string) (InvoiceInput, FieldErrors) {
	errs := make(FieldErrors)

	customerID := strings.TrimSpace(form[FieldCustomerID])
	if customerID == "" {
		errs.Add(FieldCustomerID, MsgSelectCustomer)
	}

	cents, err := ParseDecimalToCents(form[FieldAmount])
	if err != nil {
		errs.Add(FieldAmount, MsgAmountRange)
	}

	status := InvoiceStatus(strings.TrimSpace(form[FieldStatus]))
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		errs.Add(FieldStatus, MsgSelectStatus)
	}

	if len(errs) > 0 {
		return InvoiceInput{}, errs
	}
	return InvoiceInput{CustomerID: customerID, Cents: cents, Status: status}, nil
}
