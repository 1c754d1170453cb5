package http

import (
	"net/http"

	"github.com/Denizcan35/barin/internal/audit"
	applog "github.com/Denizcan35/barin/internal/log"
)

// activityRow is one rendered journal entry.
type activityRow struct {
	Action    string
	ReceiptID int64
	Actor     string
	Detail    string
	When      string
}

var actionLabels = map[string]string{
	audit.ActionUpdate: "Güncelleme",
	audit.ActionDelete: "Silme",
	audit.ActionExport: "Dışa aktarma",
}

func actionLabel(action string) string {
	if label, ok := actionLabels[action]; ok {
		return label
	}
	return action
}

// handleActivity renders the recent admin actions from the local journal.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	entries, err := s.svc.RecentActivity(r.Context(), 20)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Activity fetch failed", applog.FieldError, err)
		_, _ = w.Write([]byte(`<section id="activity" class="activity"><div class="placeholder">İşlem geçmişi yüklenemedi</div></section>`))
		return
	}

	rows := make([]activityRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, activityRow{
			Action:    actionLabel(e.Action),
			ReceiptID: e.ReceiptID,
			Actor:     e.Actor,
			Detail:    e.Detail,
			When:      e.CreatedAt.Local().Format("02.01.2006 15:04"),
		})
	}

	body, rerr := s.render("activity.html", struct{ Rows []activityRow }{rows})
	if rerr != nil {
		s.log.ErrorContext(r.Context(), "Activity render failed", applog.FieldError, rerr)
		_, _ = w.Write([]byte(`<section id="activity" class="activity"><div class="placeholder">İşlem geçmişi gösterilemedi</div></section>`))
		return
	}

	_, _ = w.Write(body)
}
