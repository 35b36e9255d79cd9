package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fatture/internal/core"
	"fatture/internal/services"
)

type fakeStore struct {
	invoice   *core.Invoice
	lastQuery string
	lastPage  int
}

func (f *fakeStore) FetchRevenue(ctx context.Context) ([]core.Revenue, error) {
	return []core.Revenue{{Month: "Jan", Revenue: 200000}, {Month: "Feb", Revenue: 180000}}, nil
}

func (f *fakeStore) FetchLatestInvoices(ctx context.Context) ([]core.LatestInvoice, error) {
	return []core.LatestInvoice{
		{ID: "inv-1", Name: "Lee Robinson", Email: "lee@robinson.com", Amount: "$32.00"},
	}, nil
}

func (f *fakeStore) FetchCardData(ctx context.Context) (core.CardData, error) {
	return core.CardData{InvoiceCount: 13, CustomerCount: 6, PaidCents: 500000, PendingCents: 90000}, nil
}

func (f *fakeStore) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]core.InvoiceRow, error) {
	f.lastQuery = query
	f.lastPage = page
	return []core.InvoiceRow{
		{ID: "inv-1", Amount: core.Money{Cents: 3200}, Date: "2024-04-12", Status: core.StatusPaid, Name: "Lee Robinson", Email: "lee@robinson.com"},
	}, nil
}

func (f *fakeStore) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	return 2, nil
}

func (f *fakeStore) FetchInvoiceByID(ctx context.Context, id string) (*core.Invoice, error) {
	return f.invoice, nil
}

func (f *fakeStore) FetchCustomers(ctx context.Context) ([]core.CustomerField, error) {
	return []core.CustomerField{{ID: "cust-1", Name: "Amy Burns"}}, nil
}

func (f *fakeStore) FetchFilteredCustomers(ctx context.Context, query string) ([]core.CustomerSummary, error) {
	f.lastQuery = query
	return []core.CustomerSummary{
		{ID: "cust-1", Name: "Amy Burns", Email: "amy@burns.com", TotalInvoices: 3, TotalPending: "$5.00", TotalPaid: "$25.00"},
	}, nil
}

type fakeMutator struct {
	createResult *services.MutationResult
	updateResult *services.MutationResult
	deleteErr    error

	createdForm map[string]string
	updatedID   string
	deletedID   string
}

func (f *fakeMutator) Create(ctx context.Context, form map[string]string) *services.MutationResult {
	f.createdForm = form
	return f.createResult
}

func (f *fakeMutator) Update(ctx context.Context, id string, form map[string]string) *services.MutationResult {
	f.updatedID = id
	return f.updateResult
}

func (f *fakeMutator) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

func newTestServer(store *fakeStore, mutator *fakeMutator) *Server {
	return NewServer(":0", store, mutator, Options{})
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestDashboardAndHealth(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeMutator{})
	defer srv.Shutdown(context.Background())

	rr := get(t, srv, "/")
	if rr.Code != 200 {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Recent Revenue", "Latest Invoices", "$5,000.00", "$900.00", "Lee Robinson"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard body missing %q", want)
		}
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := get(t, srv, path); rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestInvoicesListSearchParams(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(store, &fakeMutator{})
	defer srv.Shutdown(context.Background())

	rr := get(t, srv, "/invoices?query=lee&page=2")
	if rr.Code != 200 {
		t.Fatalf("invoices status=%d", rr.Code)
	}
	if store.lastQuery != "lee" || store.lastPage != 2 {
		t.Fatalf("search params not forwarded: query=%q page=%d", store.lastQuery, store.lastPage)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Lee Robinson") || !strings.Contains(body, "$32.00") {
		t.Fatalf("invoices body missing row data")
	}
	if !strings.Contains(body, "Apr 12, 2024") {
		t.Fatalf("invoices body missing formatted date")
	}
}

func TestInvoicesListBadPageDefaultsToFirst(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(store, &fakeMutator{})
	defer srv.Shutdown(context.Background())

	if rr := get(t, srv, "/invoices?page=zero"); rr.Code != 200 {
		t.Fatalf("invoices status=%d", rr.Code)
	}
	if store.lastPage != 1 {
		t.Fatalf("expected page fallback to 1, got %d", store.lastPage)
	}
}

func TestInvoiceCreateRedirectsAndPurgesCaches(t *testing.T) {
	mutator := &fakeMutator{}
	srv := newTestServer(&fakeStore{}, mutator)
	defer srv.Shutdown(context.Background())

	// Warm both view caches.
	get(t, srv, "/")
	get(t, srv, "/invoices")
	if srv.invoicesCache.Size() == 0 || srv.dashboardCache.Size() == 0 {
		t.Fatalf("expected warm caches before mutation")
	}

	rr := postForm(t, srv, "/invoices", url.Values{
		"customerId": {"cust-1"},
		"amount":     {"12.50"},
		"status":     {"paid"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/invoices" {
		t.Fatalf("expected redirect to /invoices, got %q", loc)
	}
	if mutator.createdForm["customerId"] != "cust-1" {
		t.Fatalf("form not forwarded to mutation layer: %v", mutator.createdForm)
	}
	if srv.invoicesCache.Size() != 0 || srv.dashboardCache.Size() != 0 {
		t.Fatalf("expected caches purged after create")
	}
}

func TestInvoiceCreateValidationRerenders(t *testing.T) {
	errs := core.FieldErrors{}
	errs.Add("customerId", core.MsgSelectCustomer)
	mutator := &fakeMutator{
		createResult: &services.MutationResult{Errors: errs, Message: services.MsgCreateMissing},
	}
	srv := newTestServer(&fakeStore{}, mutator)
	defer srv.Shutdown(context.Background())

	rr := postForm(t, srv, "/invoices", url.Values{"amount": {"12.50"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, core.MsgSelectCustomer) {
		t.Fatalf("expected field error in body")
	}
	if !strings.Contains(body, services.MsgCreateMissing) {
		t.Fatalf("expected form message in body")
	}
	// The submitted amount survives the re-render.
	if !strings.Contains(body, `value="12.50"`) {
		t.Fatalf("expected submitted amount preserved")
	}
}

func TestInvoiceEditPrefillsForm(t *testing.T) {
	store := &fakeStore{invoice: &core.Invoice{
		ID:         "inv-1",
		CustomerID: "cust-1",
		Amount:     core.Money{Cents: 666},
		Status:     core.StatusPending,
		Date:       "2024-06-15",
	}}
	srv := newTestServer(store, &fakeMutator{})
	defer srv.Shutdown(context.Background())

	rr := get(t, srv, "/invoices/inv-1/edit")
	if rr.Code != 200 {
		t.Fatalf("edit status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `value="6.66"`) {
		t.Fatalf("expected amount prefilled in dollars")
	}
}

func TestInvoiceEditMissingReturns404(t *testing.T) {
	srv := newTestServer(&fakeStore{invoice: nil}, &fakeMutator{})
	defer srv.Shutdown(context.Background())

	if rr := get(t, srv, "/invoices/nope/edit"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestInvoiceUpdateRedirects(t *testing.T) {
	mutator := &fakeMutator{}
	srv := newTestServer(&fakeStore{}, mutator)
	defer srv.Shutdown(context.Background())

	rr := postForm(t, srv, "/invoices/inv-1", url.Values{
		"customerId": {"cust-1"},
		"amount":     {"20.00"},
		"status":     {"pending"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if mutator.updatedID != "inv-1" {
		t.Fatalf("expected update for inv-1, got %q", mutator.updatedID)
	}
}

func TestInvoiceDelete(t *testing.T) {
	mutator := &fakeMutator{}
	srv := newTestServer(&fakeStore{}, mutator)
	defer srv.Shutdown(context.Background())

	rr := postForm(t, srv, "/invoices/inv-1/delete", url.Values{})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if mutator.deletedID != "inv-1" {
		t.Fatalf("expected delete for inv-1, got %q", mutator.deletedID)
	}
}

func TestInvoiceDeleteStoreErrorIs500(t *testing.T) {
	mutator := &fakeMutator{deleteErr: context.DeadlineExceeded}
	srv := newTestServer(&fakeStore{}, mutator)
	defer srv.Shutdown(context.Background())

	if rr := postForm(t, srv, "/invoices/inv-1/delete", url.Values{}); rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestCustomersPage(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(store, &fakeMutator{})
	defer srv.Shutdown(context.Background())

	rr := get(t, srv, "/customers?query=amy")
	if rr.Code != 200 {
		t.Fatalf("customers status=%d", rr.Code)
	}
	if store.lastQuery != "amy" {
		t.Fatalf("customer query not forwarded: %q", store.lastQuery)
	}
	body := rr.Body.String()
	for _, want := range []string{"Amy Burns", "$5.00", "$25.00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("customers body missing %q", want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeMutator{})
	defer srv.Shutdown(context.Background())

	rr := get(t, srv, "/")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("missing nosniff header, got %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("missing frame options header, got %q", got)
	}
}
