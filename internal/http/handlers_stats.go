package http

import (
	"net/http"
	"strconv"

	"github.com/Denizcan35/barin/internal/core"
	"github.com/Denizcan35/barin/internal/format"
	applog "github.com/Denizcan35/barin/internal/log"
)

type monthlyRow struct {
	Month  string
	Count  int
	Total  string
	TopKDV string
	Net    string
}

type userRow struct {
	Name  string
	Count int
	Total string
}

// statsData is the view model of the stats partial.
type statsData struct {
	TotalReceipts     string
	TotalAmount       string
	TotalKDV          string
	ThisMonthReceipts string
	Recent            []receiptRow
	Monthly           []monthlyRow
	Users             []userRow
}

func buildStatsData(stats core.Stats) statsData {
	data := statsData{
		TotalReceipts:     strconv.Itoa(stats.Summary.TotalReceipts),
		TotalAmount:       format.Lira(stats.Summary.TotalAmount),
		TotalKDV:          format.Lira(stats.Summary.TotalKDV),
		ThisMonthReceipts: strconv.Itoa(stats.Summary.ThisMonthReceipts),
	}

	for _, r := range stats.RecentReceipts {
		data.Recent = append(data.Recent, receiptRow{
			ID:        r.ID,
			User:      r.DisplayName(),
			Date:      format.Date(r.ReceiptDate),
			ReceiptNo: r.ReceiptNo,
			Total:     format.Lira(r.TotalAmount),
		})
	}

	for _, m := range stats.MonthlyStats {
		data.Monthly = append(data.Monthly, monthlyRow{
			Month:  m.Month,
			Count:  m.Count,
			Total:  format.Lira(m.TotalAmount),
			TopKDV: format.Lira(m.TopKDVAmount),
			Net:    format.Lira(m.NetAmount),
		})
	}

	for _, u := range stats.UserStats {
		data.Users = append(data.Users, userRow{
			Name:  u.DisplayName(),
			Count: u.ReceiptCount,
			Total: format.Lira(u.TotalAmount),
		})
	}

	return data
}

// handleStats renders the statistics partial from the shared cache.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	stats, err := s.stats(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "Stats fetch failed", applog.FieldError, err)
		_, _ = w.Write([]byte(`<section id="stats" class="stats"><div class="placeholder">İstatistikler yüklenemedi</div></section>`))
		return
	}

	body, rerr := s.render("stats.html", buildStatsData(stats))
	if rerr != nil {
		s.log.ErrorContext(r.Context(), "Stats render failed", applog.FieldError, rerr)
		_, _ = w.Write([]byte(`<section id="stats" class="stats"><div class="placeholder">İstatistikler gösterilemedi</div></section>`))
		return
	}

	_, _ = w.Write(body)
}
