package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/amqp"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/sheets/google"
)

// RecordSource is the read side the worker mirrors from.
type RecordSource interface {
	ports.SalesStore
	ports.TeamStore
}

// MirrorWorker copies submitted sales and team members into spreadsheet tabs
type MirrorWorker struct {
	source     RecordSource
	rows       ports.RowAppender
	salesSheet string
	teamSheet  string
	now        func() time.Time
}

func NewMirrorWorker(source RecordSource, rows ports.RowAppender, salesSheet, teamSheet string) *MirrorWorker {
	return &MirrorWorker{
		source:     source,
		rows:       rows,
		salesSheet: salesSheet,
		teamSheet:  teamSheet,
		now:        time.Now,
	}
}

// HandleRecordMessage processes a single record-submitted message from AMQP.
// Unknown kinds are acknowledged and dropped.
func (w *MirrorWorker) HandleRecordMessage(ctx context.Context, msg *amqp.RecordSubmittedMessage) error {
	slog.InfoContext(ctx, "Processing record message",
		"kind", msg.Kind,
		"id", msg.ID)

	var err error
	switch msg.Kind {
	case ports.KindSale:
		err = w.mirrorSale(ctx, msg.ID)
	case ports.KindTeamMember:
		err = w.mirrorTeamMember(ctx, msg.ID)
	default:
		slog.WarnContext(ctx, "Unknown record kind, dropping message", "kind", msg.Kind, "id", msg.ID)
		return nil
	}
	// A record the store does not hold never appears on redelivery.
	if errors.Is(err, ports.ErrNotFound) {
		slog.WarnContext(ctx, "Record not in store, dropping message", "kind", msg.Kind, "id", msg.ID, "error", err)
		return nil
	}
	return err
}

func (w *MirrorWorker) mirrorSale(ctx context.Context, id string) error {
	sale, err := w.source.GetSale(ctx, id)
	if err != nil {
		return fmt.Errorf("get sale from store: %w", err)
	}
	ref, err := w.rows.AppendRow(ctx, w.salesSheet, google.SaleRow(sale, w.now()))
	if err != nil {
		return fmt.Errorf("append sale row: %w", err)
	}
	slog.InfoContext(ctx, "Mirrored sale", "id", id, "sheets_ref", ref)
	return nil
}

func (w *MirrorWorker) mirrorTeamMember(ctx context.Context, id string) error {
	member, err := w.source.GetTeamMember(ctx, id)
	if err != nil {
		return fmt.Errorf("get team member from store: %w", err)
	}
	ref, err := w.rows.AppendRow(ctx, w.teamSheet, google.TeamMemberRow(member, w.now()))
	if err != nil {
		return fmt.Errorf("append team member row: %w", err)
	}
	slog.InfoContext(ctx, "Mirrored team member", "id", id, "sheets_ref", ref)
	return nil
}

// Backfill mirrors every stored record. It is meant for a fresh
// spreadsheet; rows already present are appended again.
func (w *MirrorWorker) Backfill(ctx context.Context) (int, error) {
	sales, err := w.source.ListSales(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sales: %w", err)
	}
	team, err := w.source.ListTeamMembers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list team members: %w", err)
	}

	synced, errorCount := 0, 0
	for _, s := range sales {
		if err := w.mirrorSale(ctx, s.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror sale during backfill", "id", s.ID, "error", err)
			errorCount++
			continue
		}
		synced++
	}
	for _, m := range team {
		if err := w.mirrorTeamMember(ctx, m.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror team member during backfill", "id", m.ID, "error", err)
			errorCount++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Backfill completed",
		"total", len(sales)+len(team),
		"synced", synced,
		"errors", errorCount)
	return synced, nil
}
