package http

import (
	"context"
	"net/http"

	"fatture/internal/core"
	applog "fatture/internal/log"
)

type customersView struct {
	Query     string
	Customers []core.CustomerSummary
}

// handleCustomers renders the customer table with per-customer invoice
// aggregates, optionally filtered by name or email.
func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	query, _ := parseSearchParams(r)

	customers, err := s.store.FetchFilteredCustomers(ctx, query)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Customer table fetch failed", applog.FieldError, err, applog.FieldSearchQuery, query)
		http.Error(w, "failed to load customers", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "customers_page", customersView{
		Query:     query,
		Customers: customers,
	})
}
