package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/amqp"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/store/memory"
)

type appendedRow struct {
	sheet string
	row   []any
}

type fakeAppender struct {
	rows []appendedRow
	err  error
}

func (f *fakeAppender) AppendRow(_ context.Context, sheet string, row []any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.rows = append(f.rows, appendedRow{sheet: sheet, row: row})
	return sheet + "!A1", nil
}

func newWorker(rows ports.RowAppender) *MirrorWorker {
	store := memory.NewFromSeed(memory.MockSeed(civil.Date{Year: 2025, Month: time.June, Day: 10}))
	w := NewMirrorWorker(store, rows, "2025-Sales", "2025-Team")
	w.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }
	return w
}

func TestHandleRecordMessage(t *testing.T) {
	tests := []struct {
		name      string
		msg       *amqp.RecordSubmittedMessage
		wantSheet string
		wantErr   bool
	}{
		{"sale", amqp.NewRecordSubmittedMessage(ports.KindSale, "sale-001"), "2025-Sales", false},
		{"team member", amqp.NewRecordSubmittedMessage(ports.KindTeamMember, "tm-002"), "2025-Team", false},
		{"missing sale is dropped", amqp.NewRecordSubmittedMessage(ports.KindSale, "does-not-exist"), "", false},
		{"missing team member is dropped", amqp.NewRecordSubmittedMessage(ports.KindTeamMember, "does-not-exist"), "", false},
		{"unknown kind", amqp.NewRecordSubmittedMessage("invoice", "x"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := &fakeAppender{}
			err := newWorker(rows).HandleRecordMessage(context.Background(), tt.msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HandleRecordMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantSheet == "" {
				if len(rows.rows) != 0 {
					t.Fatalf("expected no rows, got %d", len(rows.rows))
				}
				return
			}
			if len(rows.rows) != 1 || rows.rows[0].sheet != tt.wantSheet {
				t.Fatalf("rows = %+v", rows.rows)
			}
			if rows.rows[0].row[0] != tt.msg.ID {
				t.Errorf("first column = %v, want %s", rows.rows[0].row[0], tt.msg.ID)
			}
		})
	}
}

func TestHandleRecordMessageAppendFailure(t *testing.T) {
	rows := &fakeAppender{err: errors.New("quota exceeded")}
	err := newWorker(rows).HandleRecordMessage(context.Background(), amqp.NewRecordSubmittedMessage(ports.KindSale, "sale-002"))
	if err == nil {
		t.Fatal("expected error so the message is requeued")
	}
}

func TestBackfill(t *testing.T) {
	rows := &fakeAppender{}
	n, err := newWorker(rows).Backfill(context.Background())
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if n != 5 || len(rows.rows) != 5 {
		t.Fatalf("synced %d rows=%d, want 5", n, len(rows.rows))
	}
}
