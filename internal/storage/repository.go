package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fatture/internal/core"

	_ "modernc.org/sqlite"
)

// InvoicesPerPage is the fixed page size of the invoice table.
const InvoicesPerPage = 6

// invoiceFilter matches the search query against customer name/email and the
// invoice amount (as text), date, and status. The same predicate backs both
// the page fetch and the page count so the two always agree.
const invoiceFilter = `
	LOWER(customers.name) LIKE ?
	OR LOWER(customers.email) LIKE ?
	OR CAST(invoices.amount AS TEXT) LIKE ?
	OR invoices.date LIKE ?
	OR LOWER(invoices.status) LIKE ?`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FetchRevenue returns the full monthly revenue series in chart order.
func (r *SQLiteRepository) FetchRevenue(ctx context.Context) ([]core.Revenue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month, revenue FROM revenue ORDER BY sort_order`)
	if err != nil {
		slog.ErrorContext(ctx, "Revenue query failed", "error", err)
		return nil, fmt.Errorf("fetch revenue: %w", err)
	}
	defer rows.Close()

	var revenue []core.Revenue
	for rows.Next() {
		var rev core.Revenue
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("fetch revenue: %w", err)
		}
		revenue = append(revenue, rev)
	}
	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "Revenue row iteration failed", "error", err)
		return nil, fmt.Errorf("fetch revenue: %w", err)
	}
	return revenue, nil
}

// FetchLatestInvoices returns up to five invoices, at most one per customer:
// each customer's most recent invoice, globally ordered by date descending.
// Ranking plainly by date and taking five rows would let a busy customer
// crowd everyone else out of the panel.
//
// Two invoices of one customer sharing a date rank by id descending; the
// schema leaves the order undefined otherwise.
func (r *SQLiteRepository) FetchLatestInvoices(ctx context.Context) ([]core.LatestInvoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		WITH ranked AS (
			SELECT
				invoices.id,
				invoices.amount,
				invoices.date,
				customers.name,
				customers.email,
				customers.image_url,
				ROW_NUMBER() OVER (
					PARTITION BY invoices.customer_id
					ORDER BY invoices.date DESC, invoices.id DESC
				) AS rn
			FROM invoices
			JOIN customers ON customers.id = invoices.customer_id
		)
		SELECT id, amount, name, email, image_url
		FROM ranked
		WHERE rn = 1
		ORDER BY date DESC, id DESC
		LIMIT 5`)
	if err != nil {
		slog.ErrorContext(ctx, "Latest invoices query failed", "error", err)
		return nil, fmt.Errorf("fetch latest invoices: %w", err)
	}
	defer rows.Close()

	var latest []core.LatestInvoice
	for rows.Next() {
		var (
			inv   core.LatestInvoice
			cents int64
		)
		if err := rows.Scan(&inv.ID, &cents, &inv.Name, &inv.Email, &inv.ImageURL); err != nil {
			return nil, fmt.Errorf("fetch latest invoices: %w", err)
		}
		inv.Amount = core.FormatCurrency(cents)
		latest = append(latest, inv)
	}
	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "Latest invoices iteration failed", "error", err)
		return nil, fmt.Errorf("fetch latest invoices: %w", err)
	}
	return latest, nil
}

// FetchCardData computes the four dashboard figures in a single statement so
// counts and sums come from one point-in-time snapshot.
func (r *SQLiteRepository) FetchCardData(ctx context.Context) (core.CardData, error) {
	var card core.CardData
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM invoices) AS invoice_count,
			(SELECT COUNT(*) FROM customers) AS customer_count,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid_total,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending_total
		FROM invoices`).
		Scan(&card.InvoiceCount, &card.CustomerCount, &card.PaidCents, &card.PendingCents)
	if err != nil {
		slog.ErrorContext(ctx, "Card data query failed", "error", err)
		return core.CardData{}, fmt.Errorf("fetch card data: %w", err)
	}
	return card, nil
}

// FetchFilteredInvoices returns one page of the invoice table, joined with
// customer fields, newest first. page counts from 1.
func (r *SQLiteRepository) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]core.InvoiceRow, error) {
	if page < 1 {
		return nil, fmt.Errorf("fetch invoices: page %d out of range", page)
	}
	pattern := likePattern(query)
	offset := (page - 1) * InvoicesPerPage

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			invoices.id,
			invoices.amount,
			invoices.date,
			invoices.status,
			customers.name,
			customers.email,
			customers.image_url
		FROM invoices
		JOIN customers ON customers.id = invoices.customer_id
		WHERE`+invoiceFilter+`
		ORDER BY invoices.date DESC, invoices.id DESC
		LIMIT ? OFFSET ?`,
		pattern, pattern, pattern, pattern, pattern, InvoicesPerPage, offset)
	if err != nil {
		slog.ErrorContext(ctx, "Filtered invoices query failed", "error", err, "query", query, "page", page)
		return nil, fmt.Errorf("fetch invoices: %w", err)
	}
	defer rows.Close()

	var invoices []core.InvoiceRow
	for rows.Next() {
		var row core.InvoiceRow
		if err := rows.Scan(&row.ID, &row.Amount.Cents, &row.Date, &row.Status,
			&row.Name, &row.Email, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("fetch invoices: %w", err)
		}
		invoices = append(invoices, row)
	}
	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "Filtered invoices iteration failed", "error", err)
		return nil, fmt.Errorf("fetch invoices: %w", err)
	}
	return invoices, nil
}

// FetchInvoicesPages returns the number of pages the invoice table spans for
// the given search query.
func (r *SQLiteRepository) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	pattern := likePattern(query)

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON customers.id = invoices.customer_id
		WHERE`+invoiceFilter,
		pattern, pattern, pattern, pattern, pattern).Scan(&count)
	if err != nil {
		slog.ErrorContext(ctx, "Invoice count query failed", "error", err, "query", query)
		return 0, fmt.Errorf("fetch total number of invoices: %w", err)
	}
	return (count + InvoicesPerPage - 1) / InvoicesPerPage, nil
}

// FetchInvoiceByID looks up a single invoice. A missing row is a normal
// absent result, not an error: the invoice is returned as nil.
func (r *SQLiteRepository) FetchInvoiceByID(ctx context.Context, id string) (*core.Invoice, error) {
	var inv core.Invoice
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = ?`, id).
		Scan(&inv.ID, &inv.CustomerID, &inv.Amount.Cents, &inv.Status, &inv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "Invoice lookup failed", "error", err, "id", id)
		return nil, fmt.Errorf("fetch invoice: %w", err)
	}
	return &inv, nil
}

// FetchCustomers returns every customer's id and name for selection inputs.
func (r *SQLiteRepository) FetchCustomers(ctx context.Context) ([]core.CustomerField, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM customers ORDER BY name ASC`)
	if err != nil {
		slog.ErrorContext(ctx, "Customers query failed", "error", err)
		return nil, fmt.Errorf("fetch all customers: %w", err)
	}
	defer rows.Close()

	var customers []core.CustomerField
	for rows.Next() {
		var c core.CustomerField
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("fetch all customers: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "Customers iteration failed", "error", err)
		return nil, fmt.Errorf("fetch all customers: %w", err)
	}
	return customers, nil
}

// FetchFilteredCustomers returns customers whose name or email matches the
// query, each annotated with invoice count and pending/paid sums. Customers
// without invoices aggregate to zeros via the LEFT JOIN.
func (r *SQLiteRepository) FetchFilteredCustomers(ctx context.Context, query string) ([]core.CustomerSummary, error) {
	pattern := likePattern(query)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON invoices.customer_id = customers.id
		WHERE LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ?
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`,
		pattern, pattern)
	if err != nil {
		slog.ErrorContext(ctx, "Customer table query failed", "error", err, "query", query)
		return nil, fmt.Errorf("fetch customer table: %w", err)
	}
	defer rows.Close()

	var customers []core.CustomerSummary
	for rows.Next() {
		var (
			c             core.CustomerSummary
			pending, paid int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL,
			&c.TotalInvoices, &pending, &paid); err != nil {
			return nil, fmt.Errorf("fetch customer table: %w", err)
		}
		c.TotalPending = core.FormatCurrency(pending)
		c.TotalPaid = core.FormatCurrency(paid)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "Customer table iteration failed", "error", err)
		return nil, fmt.Errorf("fetch customer table: %w", err)
	}
	return customers, nil
}

// InsertInvoice persists a new invoice in a single statement.
func (r *SQLiteRepository) InsertInvoice(ctx context.Context, inv core.Invoice) error {
	if err := inv.Validate(); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.CustomerID, inv.Amount.Cents, inv.Status, inv.Date)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	slog.InfoContext(ctx, "Invoice saved",
		"id", inv.ID,
		"customer_id", inv.CustomerID,
		"amount_cents", inv.Amount.Cents,
		"status", inv.Status)
	return nil
}

// UpdateInvoice rewrites the editable fields of an invoice by id. The issue
// date is immutable after creation and stays untouched.
func (r *SQLiteRepository) UpdateInvoice(ctx context.Context, id string, in core.InvoiceInput) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = ?, amount = ?, status = ?
		WHERE id = ?`,
		in.CustomerID, in.Cents, in.Status, id)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	slog.InfoContext(ctx, "Invoice updated",
		"id", id,
		"customer_id", in.CustomerID,
		"amount_cents", in.Cents,
		"status", in.Status)
	return nil
}

// DeleteInvoice removes an invoice by id. Deleting an id that does not exist
// is a no-op.
func (r *SQLiteRepository) DeleteInvoice(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	slog.InfoContext(ctx, "Invoice deleted", "id", id)
	return nil
}

func likePattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}
