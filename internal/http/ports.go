package http

import (
	"context"

	"fatture/internal/core"
	"fatture/internal/services"
)

// DashboardReader provides the three independent dashboard queries.
type DashboardReader interface {
	FetchRevenue(ctx context.Context) ([]core.Revenue, error)
	FetchLatestInvoices(ctx context.Context) ([]core.LatestInvoice, error)
	FetchCardData(ctx context.Context) (core.CardData, error)
}

// InvoiceReader provides the searchable invoice table and single lookups.
type InvoiceReader interface {
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]core.InvoiceRow, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id string) (*core.Invoice, error)
}

// CustomerReader provides customer lookups and the aggregated customer table.
type CustomerReader interface {
	FetchCustomers(ctx context.Context) ([]core.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]core.CustomerSummary, error)
}

// Store is the full read surface the server renders from.
type Store interface {
	DashboardReader
	InvoiceReader
	CustomerReader
}

// InvoiceMutator runs the three invoice write operations.
type InvoiceMutator interface {
	Create(ctx context.Context, form map[string]string) *services.MutationResult
	Update(ctx context.Context, id string, form map[string]string) *services.MutationResult
	Delete(ctx context.Context, id string) error
}
