package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Denizcan35/barin/internal/core"
	"github.com/Denizcan35/barin/internal/format"
	applog "github.com/Denizcan35/barin/internal/log"
	"github.com/Denizcan35/barin/internal/notify"
	"github.com/Denizcan35/barin/internal/view"
)

// receiptRow is one rendered table row.
type receiptRow struct {
	ID        int64
	User      string
	Date      string
	ReceiptNo string
	Total     string
	KDV10     string
	TopKDV    string
	Net       string
	Created   string
}

type limitOption struct {
	Value    int
	Selected bool
}

// listData is the view model of the receipts table partial.
type listData struct {
	Rows       []receiptRow
	Total      int
	Error      bool
	StartDate  string
	EndDate    string
	User       string
	Page       int
	TotalPages int
	PrevPage   int
	NextPage   int
	HasPrev    bool
	HasNext    bool
	Limits     []limitOption
}

func buildListData(snap view.Snapshot) listData {
	f := snap.Filter
	data := listData{
		Total:      snap.Total,
		Error:      snap.Phase == view.PhaseError,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		User:       f.User,
		Page:       f.Page,
		TotalPages: f.TotalPages(snap.Total),
		PrevPage:   f.PrevPage(),
		NextPage:   f.NextPage(snap.Total),
	}
	data.HasPrev = f.Page > 1
	data.HasNext = f.Page < data.TotalPages

	for _, size := range core.PageSizes {
		data.Limits = append(data.Limits, limitOption{Value: size, Selected: size == f.Limit})
	}

	for _, r := range snap.Receipts {
		data.Rows = append(data.Rows, receiptRow{
			ID:        r.ID,
			User:      r.DisplayName(),
			Date:      format.Date(r.ReceiptDate),
			ReceiptNo: r.ReceiptNo,
			Total:     format.Lira(r.TotalAmount),
			KDV10:     format.Lira(r.KDV10Amount),
			TopKDV:    format.Lira(r.TopKDVAmount),
			Net:       format.Lira(r.NetAmount),
			Created:   format.DateTime(r.CreatedAt),
		})
	}

	return data
}

// render executes a template into memory so headers can still be set on
// failure.
func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, fmt.Errorf("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) renderListPartial(st *view.ListState) ([]byte, error) {
	return s.render("receipts.html", buildListData(st.Snapshot()))
}

// handleIndex renders the dashboard shell; the stats and list sections
// load themselves over HTMX.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	f := st.Filter()

	body, err := s.render("index.html", struct {
		StartDate string
		EndDate   string
		User      string
	}{f.StartDate, f.EndDate, f.User})
	if err != nil {
		s.log.ErrorContext(r.Context(), "Index render failed", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// handleReceiptList applies filter parameters and renders the table
// partial. The fetch is guarded by the session's generation counter so a
// slow response never overwrites a newer one.
func (s *Server) handleReceiptList(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r)
	buf := notify.NewBuffer()

	ApplyFilterParams(r.URL.Query(), st)

	gen := st.BeginFetch()
	page, err := s.svc.List(r.Context(), st.Filter())
	applied := st.Apply(gen, page, err)
	if !applied {
		s.log.DebugContext(r.Context(), "Stale list fetch discarded", "generation", gen)
	}
	if err != nil {
		s.log.ErrorContext(r.Context(), "Receipt list fetch failed", applog.FieldError, err)
		buf.Error("Fişler yüklenemedi")
	}

	body, rerr := s.renderListPartial(st)
	if rerr != nil {
		s.log.ErrorContext(r.Context(), "Receipt list render failed", applog.FieldError, rerr)
		InternalServerError("Liste gösterilemedi").Write(w)
		return
	}

	NewHTMXResponse().
		Notifications(buf.Drain()).
		Body(body).
		Header("Content-Type", "text/html; charset=utf-8").
		Write(w)
}

// editModalData is the view model of the edit modal partial. Amounts are
// plain decimal strings for the number inputs, not display-formatted.
type editModalData struct {
	ID          int64
	User        string
	ReceiptDate string
	ReceiptNo   string
	Total       string
	KDV10       string
	TopKDV      string
	Net         string
}

func amountInput(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (s *Server) handleEditModal(w http.ResponseWriter, r *http.Request) {
	id, err := parseReceiptID(r)
	if err != nil {
		BadRequestError("Geçersiz fiş numarası").Write(w)
		return
	}

	st := s.session(w, r)
	receipt, ok := st.Receipt(id)
	if !ok {
		NotFoundError("Fiş bulunamadı").Write(w)
		return
	}

	// Fresh form per opened record; nothing survives from the last modal.
	form := core.NewEditForm(receipt)
	body, rerr := s.render("edit_modal.html", editModalData{
		ID:          receipt.ID,
		User:        receipt.DisplayName(),
		ReceiptDate: form.ReceiptDate,
		ReceiptNo:   form.ReceiptNo,
		Total:       amountInput(form.TotalAmount),
		KDV10:       amountInput(form.KDV10Amount),
		TopKDV:      amountInput(form.TopKDVAmount),
		Net:         amountInput(form.NetAmount),
	})
	if rerr != nil {
		s.log.ErrorContext(r.Context(), "Edit modal render failed", applog.FieldError, rerr, applog.FieldReceiptID, id)
		InternalServerError("Form gösterilemedi").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) handleUpdateReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := parseReceiptID(r)
	if err != nil {
		BadRequestError("Geçersiz fiş numarası").Write(w)
		return
	}

	st := s.session(w, r)
	original, ok := st.Receipt(id)
	if !ok {
		NotFoundError("Fiş bulunamadı").Write(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		BadRequestError("Geçersiz istek biçimi").Write(w)
		return
	}

	form, err := ParseEditForm(r, original)
	if err != nil {
		UnprocessableEntityError("Geçersiz tutar").Write(w)
		return
	}

	merged := form.Merge(original)
	if err := merged.Validate(); err != nil {
		s.log.WarnContext(r.Context(), "Receipt update rejected", applog.FieldReceiptID, id, applog.FieldError, err)
		UnprocessableEntityError("Geçersiz fiş verisi").Write(w)
		return
	}

	buf := notify.NewBuffer()
	updated, err := s.svc.Update(r.Context(), merged, clientIP(r))
	if err != nil {
		s.log.ErrorContext(r.Context(), "Receipt update failed", applog.FieldReceiptID, id, applog.FieldError, err)
		NewHTMXResponse().
			Status(http.StatusBadGateway).
			TriggerErrorNotification("Fiş güncellenemedi").
			BodyHTML(`<div class="error">Fiş güncellenemedi</div>`).
			Write(w)
		return
	}

	// Patch the local collection; the next fetch reconciles with the backend.
	st.ReplaceReceipt(updated)
	s.statsCache.Delete("stats")
	buf.Success("Fiş güncellendi")

	body, rerr := s.renderListPartial(st)
	if rerr != nil {
		s.log.ErrorContext(r.Context(), "Receipt list render failed", applog.FieldError, rerr)
		InternalServerError("Liste gösterilemedi").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerReceiptUpdated(updated.ID).
		TriggerModalClose().
		Notifications(buf.Drain()).
		Body(body).
		Header("Content-Type", "text/html; charset=utf-8").
		Write(w)
}

func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := parseReceiptID(r)
	if err != nil {
		BadRequestError("Geçersiz fiş numarası").Write(w)
		return
	}

	st := s.session(w, r)
	buf := notify.NewBuffer()

	if err := s.svc.Delete(r.Context(), id, clientIP(r)); err != nil {
		s.log.ErrorContext(r.Context(), "Receipt delete failed", applog.FieldReceiptID, id, applog.FieldError, err)
		NewHTMXResponse().
			Status(http.StatusBadGateway).
			TriggerErrorNotification("Fiş silinemedi").
			BodyHTML(`<div class="error">Fiş silinemedi</div>`).
			Write(w)
		return
	}

	// Drop the row locally instead of refetching the page.
	st.RemoveReceipt(id)
	s.statsCache.Delete("stats")
	buf.Success("Fiş silindi")

	body, rerr := s.renderListPartial(st)
	if rerr != nil {
		s.log.ErrorContext(r.Context(), "Receipt list render failed", applog.FieldError, rerr)
		InternalServerError("Liste gösterilemedi").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerReceiptDeleted(id).
		Notifications(buf.Drain()).
		Body(body).
		Header("Content-Type", "text/html; charset=utf-8").
		Write(w)
}
