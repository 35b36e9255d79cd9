package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

// DateLayout is the calendar-date storage format (no time component).
const DateLayout = "2006-01-02"

type (
	InvoiceStatus string

	Invoice struct {
		ID         string
		CustomerID string
		Amount     Money
		Status     InvoiceStatus
		Date       string // YYYY-MM-DD
	}

	Customer struct {
		ID       string
		Name     string
		Email    string
		ImageURL string
	}

	// Revenue is a read-only (month, total) reference point.
	Revenue struct {
		Month   string
		Revenue int64
	}

	// LatestInvoice is a dashboard row: one invoice joined with its customer,
	// amount already formatted for display.
	LatestInvoice struct {
		ID       string
		Name     string
		Email    string
		ImageURL string
		Amount   string
	}

	// InvoiceRow is one row of the searchable invoice table.
	InvoiceRow struct {
		ID       string
		Amount   Money
		Date     string
		Status   InvoiceStatus
		Name     string
		Email    string
		ImageURL string
	}

	// CardData holds the four dashboard summary figures, taken in a single
	// snapshot so the counts and sums agree with each other.
	CardData struct {
		InvoiceCount  int64
		CustomerCount int64
		PaidCents     int64
		PendingCents  int64
	}

	// CustomerField is the minimal customer shape for selection inputs.
	CustomerField struct {
		ID   string
		Name string
	}

	// CustomerSummary is one row of the customer table: customer fields plus
	// invoice aggregates, sums formatted for display.
	CustomerSummary struct {
		ID            string
		Name          string
		Email         string
		ImageURL      string
		TotalInvoices int64
		TotalPending  string
		TotalPaid     string
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrEmptyCustomer  = errors.New("empty customer reference")
	ErrEmptyInvoiceID = errors.New("empty invoice id")
)

// IsValid reports whether s is one of the two enumerated statuses.
func (s InvoiceStatus) IsValid() bool {
	return s == StatusPending || s == StatusPaid
}

func (i Invoice) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyInvoiceID
	}
	if strings.TrimSpace(i.CustomerID) == "" {
		return ErrEmptyCustomer
	}
	if i.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !i.Status.IsValid() {
		return ErrInvalidStatus
	}
	if _, err := time.Parse(DateLayout, i.Date); err != nil {
		return errors.New("invalid date: " + i.Date)
	}
	return nil
}

// Today returns the current calendar date in storage format.
func Today() string {
	return time.Now().Format(DateLayout)
}

// FormatDate converts a stored YYYY-MM-DD date to a short display form
// such as "Apr 12, 2024". Unparseable input is returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse(DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}
