package core

import "testing"

func TestParseInvoiceForm(t *testing.T) {
	t.Run("valid with explicit status", func(t *testing.T) {
		in, errs := ParseInvoiceForm(map[string]string{
			"customerId": "cust-1",
			"amount":     "15.50",
			"status":     "paid",
		})
		if errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if in.CustomerID != "cust-1" || in.Cents != 1550 || in.Status != StatusPaid {
			t.Fatalf("unexpected input: %+v", in)
		}
	})

	t.Run("status defaults to pending", func(t *testing.T) {
		in, errs := ParseInvoiceForm(map[string]string{
			"customerId": "cust-1",
			"amount":     "9.99",
		})
		if errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if in.Status != StatusPending {
			t.Fatalf("status = %q, want pending", in.Status)
		}
	})

	t.Run("missing customer names the field", func(t *testing.T) {
		_, errs := ParseInvoiceForm(map[string]string{"amount": "10"})
		if len(errs[FieldCustomerID]) == 0 {
			t.Fatalf("expected customerId error, got %v", errs)
		}
	})

	t.Run("non-positive and malformed amounts", func(t *testing.T) {
		for _, amount := range []string{"0", "-5", "abc", ""} {
			_, errs := ParseInvoiceForm(map[string]string{
				"customerId": "cust-1",
				"amount":     amount,
			})
			if len(errs[FieldAmount]) == 0 {
				t.Fatalf("amount %q: expected error, got %v", amount, errs)
			}
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, errs := ParseInvoiceForm(map[string]string{
			"customerId": "cust-1",
			"amount":     "10",
			"status":     "overdue",
		})
		if len(errs[FieldStatus]) == 0 {
			t.Fatalf("expected status error, got %v", errs)
		}
	})

	t.Run("all fields invalid collects every field", func(t *testing.T) {
		_, errs := ParseInvoiceForm(map[string]string{"status": "nope"})
		for _, f := range []string{FieldCustomerID, FieldAmount, FieldStatus} {
			if len(errs[f]) == 0 {
				t.Fatalf("missing error for %s: %v", f, errs)
			}
		}
	})
}
