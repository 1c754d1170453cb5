package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/Denizcan35/barin/internal/amqp"
	"github.com/Denizcan35/barin/internal/audit"
	"github.com/Denizcan35/barin/internal/core"
)

type fakeBackend struct {
	stats     core.Stats
	page      core.ReceiptPage
	updated   core.Receipt
	updateErr error
	deleteErr error
	exportErr error

	deletedID  int64
	gotReceipt core.Receipt
	gotParams  url.Values
}

func (f *fakeBackend) Stats(ctx context.Context) (core.Stats, error) { return f.stats, nil }

func (f *fakeBackend) List(ctx context.Context, filter core.Filter) (core.ReceiptPage, error) {
	return f.page, nil
}

func (f *fakeBackend) Update(ctx context.Context, r core.Receipt) (core.Receipt, error) {
	f.gotReceipt = r
	if f.updateErr != nil {
		return core.Receipt{}, f.updateErr
	}
	if f.updated.ID != 0 {
		return f.updated, nil
	}
	return r, nil
}

func (f *fakeBackend) Delete(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeBackend) ExportExcel(ctx context.Context, params url.Values) (io.ReadCloser, error) {
	f.gotParams = params
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return io.NopCloser(strings.NewReader("xlsx-bytes")), nil
}

type journalEntry struct {
	action    string
	receiptID int64
	actor     string
	detail    string
}

type fakeJournal struct {
	entries []journalEntry
	err     error
}

func (f *fakeJournal) Append(ctx context.Context, action string, receiptID int64, actor, detail string) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, journalEntry{action, receiptID, actor, detail})
	return nil
}

type publishedEvent struct {
	action    string
	receiptID int64
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) PublishReceiptEvent(ctx context.Context, action string, receiptID int64) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{action, receiptID})
	return nil
}

type fakeReadableJournal struct {
	fakeJournal
	recent []audit.Entry
}

func (f *fakeReadableJournal) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return f.recent, nil
}

func TestRecentActivity(t *testing.T) {
	journal := &fakeReadableJournal{recent: []audit.Entry{{ID: 1, Action: audit.ActionDelete, ReceiptID: 7}}}
	svc := NewReceiptService(&fakeBackend{}, journal, nil)

	entries, err := svc.RecentActivity(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentActivity() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ReceiptID != 7 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRecentActivityWithoutReadSide(t *testing.T) {
	svc := NewReceiptService(&fakeBackend{}, &fakeJournal{}, nil)

	entries, err := svc.RecentActivity(context.Background(), 10)
	if err != nil || entries != nil {
		t.Errorf("entries = %v, err = %v; want empty history", entries, err)
	}
}

func TestUpdateRecordsSideChannels(t *testing.T) {
	backend := &fakeBackend{}
	journal := &fakeJournal{}
	publisher := &fakePublisher{}
	svc := NewReceiptService(backend, journal, publisher)

	r := core.Receipt{ID: 42, ReceiptNo: "A-100", TotalAmount: 150, TopKDVAmount: 13.64, NetAmount: 136.36}
	updated, err := svc.Update(context.Background(), r, "10.0.0.1")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != 42 {
		t.Errorf("updated.ID = %d, want 42", updated.ID)
	}

	if len(journal.entries) != 1 {
		t.Fatalf("got %d journal entries, want 1", len(journal.entries))
	}
	e := journal.entries[0]
	if e.action != audit.ActionUpdate || e.receiptID != 42 || e.actor != "10.0.0.1" {
		t.Errorf("journal entry = %+v", e)
	}
	if !strings.Contains(e.detail, "A-100") {
		t.Errorf("detail %q should mention the receipt number", e.detail)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("got %d events, want 1", len(publisher.events))
	}
	if publisher.events[0].action != amqp.ActionUpdated || publisher.events[0].receiptID != 42 {
		t.Errorf("event = %+v", publisher.events[0])
	}
}

func TestUpdateBackendErrorSkipsSideChannels(t *testing.T) {
	backend := &fakeBackend{updateErr: errors.New("boom")}
	journal := &fakeJournal{}
	publisher := &fakePublisher{}
	svc := NewReceiptService(backend, journal, publisher)

	if _, err := svc.Update(context.Background(), core.Receipt{ID: 1}, "tester"); err == nil {
		t.Fatal("Update() should fail when the backend fails")
	}
	if len(journal.entries) != 0 || len(publisher.events) != 0 {
		t.Error("side channels should not be touched on backend failure")
	}
}

func TestDeleteSurvivesSideChannelFailures(t *testing.T) {
	backend := &fakeBackend{}
	journal := &fakeJournal{err: errors.New("disk full")}
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := NewReceiptService(backend, journal, publisher)

	if err := svc.Delete(context.Background(), 7, "tester"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if backend.deletedID != 7 {
		t.Errorf("deletedID = %d, want 7", backend.deletedID)
	}
}

func TestDeleteWithoutSideChannels(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewReceiptService(backend, nil, nil)

	if err := svc.Delete(context.Background(), 9, "tester"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestExportForwardsFiltersAndRecords(t *testing.T) {
	backend := &fakeBackend{}
	journal := &fakeJournal{}
	publisher := &fakePublisher{}
	svc := NewReceiptService(backend, journal, publisher)

	params := url.Values{}
	params.Set("startDate", "2024-01-01")
	params.Set("user", "ahmet")

	stream, err := svc.Export(context.Background(), params, "10.0.0.1")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	defer stream.Close()

	if backend.gotParams.Get("startDate") != "2024-01-01" {
		t.Errorf("startDate not forwarded: %v", backend.gotParams)
	}
	if len(journal.entries) != 1 || journal.entries[0].action != audit.ActionExport {
		t.Errorf("journal entries = %+v", journal.entries)
	}
	if journal.entries[0].receiptID != 0 {
		t.Errorf("export entry should carry no receipt id, got %d", journal.entries[0].receiptID)
	}
	if !strings.Contains(journal.entries[0].detail, "user=ahmet") {
		t.Errorf("detail %q should mention filters", journal.entries[0].detail)
	}
	if len(publisher.events) != 1 || publisher.events[0].action != amqp.ActionExported {
		t.Errorf("events = %+v", publisher.events)
	}
}
