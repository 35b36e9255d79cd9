package http

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"fatture/internal/core"
	applog "fatture/internal/log"
	"fatture/internal/services"
)

type invoicesView struct {
	Query      string
	Page       int
	TotalPages int
	PrevPage   int
	NextPage   int
	Invoices   []invoiceRowView
}

type invoiceRowView struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
	Amount   string
	Date     string
	Status   string
}

// invoiceFormView backs both the create and the edit form, including the
// re-render after a failed submission.
type invoiceFormView struct {
	ID         string
	CustomerID string
	Amount     string
	Status     string
	Customers  []core.CustomerField
	Errors     core.FieldErrors
	Message    string
}

// handleInvoicesList renders one page of the searchable invoice table. The
// page fetch and the page count are independent reads and run concurrently.
func (s *Server) handleInvoicesList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	query, page := parseSearchParams(r)
	key := fmt.Sprintf("invoices?query=%s&page=%d", query, page)

	if view, ok := s.invoicesCache.Get(key); ok {
		s.render(w, r, "invoices_page", view)
		return
	}

	var (
		rows       []core.InvoiceRow
		totalPages int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.FetchFilteredInvoices(gctx, query, page)
		return err
	})
	g.Go(func() error {
		var err error
		totalPages, err = s.store.FetchInvoicesPages(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Invoice list fetch failed",
			applog.FieldError, err, applog.FieldSearchQuery, query, applog.FieldPage, page)
		http.Error(w, "failed to load invoices", http.StatusInternalServerError)
		return
	}

	view := invoicesView{
		Query:      query,
		Page:       page,
		TotalPages: totalPages,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}
	if page >= totalPages {
		view.NextPage = 0
	}
	for _, row := range rows {
		view.Invoices = append(view.Invoices, invoiceRowView{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			ImageURL: row.ImageURL,
			Amount:   core.FormatCurrency(row.Amount.Cents),
			Date:     core.FormatDate(row.Date),
			Status:   string(row.Status),
		})
	}

	s.invoicesCache.Set(key, view)
	s.render(w, r, "invoices_page", view)
}

// handleInvoiceNew renders an empty invoice form.
func (s *Server) handleInvoiceNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	customers, err := s.store.FetchCustomers(ctx)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Customer fetch failed", applog.FieldError, err)
		http.Error(w, "failed to load customers", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "invoice_new", invoiceFormView{
		Status:    string(core.StatusPending),
		Customers: customers,
	})
}

// handleInvoiceCreate validates and persists a new invoice. On success the
// cached listing is stale, so it is purged and the browser is sent back to
// it; on failure the form re-renders in place with the field messages.
func (s *Server) handleInvoiceCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fields := formFields(r)

	if res := s.invoices.Create(ctx, fields); res != nil {
		s.renderInvoiceForm(w, r, "invoice_new", "", fields, res)
		return
	}

	s.invoicesCache.Purge()
	s.dashboardCache.Purge()
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// handleInvoiceEdit renders the edit form for one invoice, or 404 when the
// id matches nothing.
func (s *Server) handleInvoiceEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id := r.PathValue("id")

	var (
		inv       *core.Invoice
		customers []core.CustomerField
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inv, err = s.store.FetchInvoiceByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.store.FetchCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Invoice edit fetch failed", applog.FieldError, err, applog.FieldInvoiceID, id)
		http.Error(w, "failed to load invoice", http.StatusInternalServerError)
		return
	}
	if inv == nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, r, "invoice_edit", invoiceFormView{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     dollarsString(inv.Amount.Cents),
		Status:     string(inv.Status),
		Customers:  customers,
	})
}

// handleInvoiceUpdate rewrites an invoice's editable fields.
func (s *Server) handleInvoiceUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fields := formFields(r)

	if res := s.invoices.Update(ctx, id, fields); res != nil {
		s.renderInvoiceForm(w, r, "invoice_edit", id, fields, res)
		return
	}

	s.invoicesCache.Purge()
	s.dashboardCache.Purge()
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// handleInvoiceDelete removes an invoice and sends the browser back to the
// listing it came from. Store failures propagate as a plain 500.
func (s *Server) handleInvoiceDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id := r.PathValue("id")
	if err := s.invoices.Delete(ctx, id); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Invoice delete failed", applog.FieldError, err, applog.FieldInvoiceID, id)
		http.Error(w, "failed to delete invoice", http.StatusInternalServerError)
		return
	}

	s.invoicesCache.Purge()
	s.dashboardCache.Purge()
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// renderInvoiceForm re-renders a create/edit form after a failed mutation,
// keeping the submitted values and showing the validation or store message.
func (s *Server) renderInvoiceForm(w http.ResponseWriter, r *http.Request, name, id string, fields map[string]string, res *services.MutationResult) {
	customers, err := s.store.FetchCustomers(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Customer fetch failed", applog.FieldError, err)
		http.Error(w, "failed to load customers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if s.templates == nil {
		return
	}
	view := invoiceFormView{
		ID:         id,
		CustomerID: fields[core.FieldCustomerID],
		Amount:     fields[core.FieldAmount],
		Status:     fields[core.FieldStatus],
		Customers:  customers,
		Errors:     res.Errors,
		Message:    res.Message,
	}
	if err := s.templates.ExecuteTemplate(w, name, view); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			"template", name, applog.FieldError, err, applog.FieldComponent, applog.ComponentTemplate)
	}
}
