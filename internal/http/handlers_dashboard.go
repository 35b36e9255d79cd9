package http

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"fatture/internal/core"
	applog "fatture/internal/log"
)

type dashboardView struct {
	Revenue        []revenuePoint
	LatestInvoices []core.LatestInvoice
	TotalPaid      string
	TotalPending   string
	InvoiceCount   int64
	CustomerCount  int64
}

type revenuePoint struct {
	Month   string
	Revenue int64
	// Bar height as a percentage of the busiest month, for the CSS chart.
	Percent int
}

const dashboardCacheKey = "dashboard"

// handleDashboard renders the main dashboard page. The three queries are
// independent, so they run concurrently and the page waits for the slowest
// one rather than for their sum.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if view, ok := s.dashboardCache.Get(dashboardCacheKey); ok {
		s.render(w, r, "dashboard_page", view)
		return
	}

	var (
		revenue []core.Revenue
		latest  []core.LatestInvoice
		card    core.CardData
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = s.store.FetchRevenue(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.store.FetchLatestInvoices(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		card, err = s.store.FetchCardData(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Dashboard data fetch failed", applog.FieldError, err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	view := dashboardView{
		Revenue:        revenueChart(revenue),
		LatestInvoices: latest,
		TotalPaid:      core.FormatCurrency(card.PaidCents),
		TotalPending:   core.FormatCurrency(card.PendingCents),
		InvoiceCount:   card.InvoiceCount,
		CustomerCount:  card.CustomerCount,
	}
	s.dashboardCache.Set(dashboardCacheKey, view)
	s.render(w, r, "dashboard_page", view)
}

func revenueChart(revenue []core.Revenue) []revenuePoint {
	var max int64
	for _, rev := range revenue {
		if rev.Revenue > max {
			max = rev.Revenue
		}
	}

	points := make([]revenuePoint, len(revenue))
	for i, rev := range revenue {
		points[i] = revenuePoint{Month: rev.Month, Revenue: rev.Revenue}
		if max > 0 {
			points[i].Percent = int(rev.Revenue * 100 / max)
		}
	}
	return points
}
