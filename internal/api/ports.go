// Package api talks to the external receipt backend over its REST
// contract. The backend owns persistence, authentication of the ingest
// bot, and Excel generation; this package only consumes.
package api

import (
	"context"
	"io"
	"net/url"

	"github.com/Denizcan35/barin/internal/core"
)

// StatsReader fetches the aggregate statistics document.
type StatsReader interface {
	Stats(ctx context.Context) (core.Stats, error)
}

// ReceiptLister fetches one filtered, paginated page of receipts.
type ReceiptLister interface {
	List(ctx context.Context, f core.Filter) (core.ReceiptPage, error)
}

// ReceiptUpdater replaces a receipt document in full.
type ReceiptUpdater interface {
	Update(ctx context.Context, r core.Receipt) (core.Receipt, error)
}

// ReceiptDeleter removes a receipt by id.
type ReceiptDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// ExcelExporter streams the backend's spreadsheet export. The params are
// either empty (full export) or the three textual filters.
type ExcelExporter interface {
	ExportExcel(ctx context.Context, params url.Values) (io.ReadCloser, error)
}

// Backend bundles everything the dashboard needs from the receipt API.
type Backend interface {
	StatsReader
	ReceiptLister
	ReceiptUpdater
	ReceiptDeleter
	ExcelExporter
}
