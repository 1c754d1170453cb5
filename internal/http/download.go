package http

import (
	"fmt"
	"io"
	"net/http"

	applog "github.com/Denizcan35/barin/internal/log"
)

// Download is a file delivery decoupled from any browser mechanism: the
// handler describes what to send and Serve decides how. Content is
// streamed, never buffered whole.
type Download struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// Serve writes the download to the response with attachment disposition.
func (d Download) Serve(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))

	log := applog.Default(applog.ComponentHTTP)
	n, err := io.Copy(w, d.Content)
	if err != nil {
		// Headers are gone; all we can do is log the truncation.
		log.ErrorContext(r.Context(), "Download stream interrupted",
			"filename", d.Filename,
			"bytes_sent", n,
			applog.FieldError, err)
		return err
	}

	log.InfoContext(r.Context(), "Download served",
		"filename", d.Filename,
		"bytes_sent", n)
	return nil
}
