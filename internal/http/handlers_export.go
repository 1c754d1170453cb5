package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Denizcan35/barin/internal/format"
	applog "github.com/Denizcan35/barin/internal/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportExcel streams the backend's spreadsheet to the caller.
// With filtered=1 the session's text filters ride along; pagination never
// does, an export always covers every matching record.
func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	params := url.Values{}
	if r.URL.Query().Get("filtered") == "1" {
		st := s.session(w, r)
		params = st.Filter().ExportValues()
	}

	stream, err := s.svc.Export(r.Context(), params, clientIP(r))
	if err != nil {
		s.log.ErrorContext(r.Context(), "Excel export failed", applog.FieldError, err, "params", params.Encode())
		http.Error(w, "Dışa aktarma başarısız oldu", http.StatusBadGateway)
		return
	}
	defer stream.Close()

	d := Download{
		Filename:    format.ExportFilename(time.Now()),
		ContentType: xlsxContentType,
		Content:     stream,
	}
	_ = d.Serve(w, r)
}
