// Package service orchestrates receipt operations across the backend
// API, the local audit journal, and the event broker. The backend is
// the source of truth; journal writes and event publishes are best
// effort and never fail an operation the backend already accepted.
package service

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Denizcan35/barin/internal/amqp"
	"github.com/Denizcan35/barin/internal/api"
	"github.com/Denizcan35/barin/internal/audit"
	"github.com/Denizcan35/barin/internal/core"
	applog "github.com/Denizcan35/barin/internal/log"
)

// EventPublisher announces receipt changes to the broker.
type EventPublisher interface {
	PublishReceiptEvent(ctx context.Context, action string, receiptID int64) error
}

// Journal records operator actions locally.
type Journal interface {
	Append(ctx context.Context, action string, receiptID int64, actor, detail string) error
}

// JournalReader is the optional read side of a Journal.
type JournalReader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// ReceiptService coordinates backend mutations with their side channels.
// Both journal and publisher may be nil when the feature is not configured.
type ReceiptService struct {
	backend   api.Backend
	journal   Journal
	publisher EventPublisher
	log       *applog.Logger
}

func NewReceiptService(backend api.Backend, journal Journal, publisher EventPublisher) *ReceiptService {
	return &ReceiptService{
		backend:   backend,
		journal:   journal,
		publisher: publisher,
		log:       applog.Default(applog.ComponentService),
	}
}

// Stats fetches the aggregate statistics document.
func (s *ReceiptService) Stats(ctx context.Context) (core.Stats, error) {
	return s.backend.Stats(ctx)
}

// List fetches one filtered page of receipts.
func (s *ReceiptService) List(ctx context.Context, f core.Filter) (core.ReceiptPage, error) {
	return s.backend.List(ctx, f)
}

// RecentActivity returns the latest journal entries, newest first. A
// journal without a read side (or none at all) yields an empty history.
func (s *ReceiptService) RecentActivity(ctx context.Context, limit int) ([]audit.Entry, error) {
	reader, ok := s.journal.(JournalReader)
	if !ok {
		return nil, nil
	}
	return reader.ListRecent(ctx, limit)
}

// Update replaces a receipt on the backend, then records the change.
func (s *ReceiptService) Update(ctx context.Context, r core.Receipt, actor string) (core.Receipt, error) {
	updated, err := s.backend.Update(ctx, r)
	if err != nil {
		return core.Receipt{}, fmt.Errorf("update receipt: %w", err)
	}

	detail := fmt.Sprintf("receipt_no=%s total=%.2f net=%.2f", updated.ReceiptNo, updated.TotalAmount, updated.NetAmount)
	s.record(ctx, audit.ActionUpdate, amqp.ActionUpdated, updated.ID, actor, detail)

	return updated, nil
}

// Delete removes a receipt on the backend, then records the change.
func (s *ReceiptService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}

	s.record(ctx, audit.ActionDelete, amqp.ActionDeleted, id, actor, "")

	return nil
}

// Export streams the backend's spreadsheet. The caller owns the reader.
func (s *ReceiptService) Export(ctx context.Context, params url.Values, actor string) (io.ReadCloser, error) {
	stream, err := s.backend.ExportExcel(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("export receipts: %w", err)
	}

	detail := ""
	if len(params) > 0 {
		detail = "filters: " + params.Encode()
	}
	s.record(ctx, audit.ActionExport, amqp.ActionExported, 0, actor, detail)

	return stream, nil
}

// record writes the journal entry and publishes the broker event.
// Failures here are logged and swallowed, the backend change stands.
func (s *ReceiptService) record(ctx context.Context, auditAction, eventAction string, receiptID int64, actor, detail string) {
	if s.journal != nil {
		if err := s.journal.Append(ctx, auditAction, receiptID, actor, detail); err != nil {
			s.log.ErrorContext(ctx, "Failed to record audit entry",
				applog.FieldAction, auditAction,
				applog.FieldReceiptID, receiptID,
				applog.FieldError, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishReceiptEvent(ctx, eventAction, receiptID); err != nil {
			s.log.ErrorContext(ctx, "Failed to publish receipt event",
				applog.FieldAction, eventAction,
				applog.FieldReceiptID, receiptID,
				applog.FieldError, err)
		}
	}
}
