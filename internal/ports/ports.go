// Package ports declares the interfaces between the business logic and its
// adapters (stores, message broker, spreadsheet mirror).
package ports

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

var ErrNotFound = errors.New("not found")

type (
	// ExpenseReader supplies expense records. A zero date returns every record.
	ExpenseReader interface {
		ListExpenses(ctx context.Context, date civil.Date) ([]core.ExpenseRecord, error)
	}

	AccountStore interface {
		GetAccount(ctx context.Context, date civil.Date) (core.AccountState, error)
		SaveAccount(ctx context.Context, a core.AccountState) error
	}

	SalesStore interface {
		SaveSale(ctx context.Context, r core.SalesRecord) error
		GetSale(ctx context.Context, id string) (core.SalesRecord, error)
		ListSales(ctx context.Context) ([]core.SalesRecord, error)
	}

	TeamStore interface {
		SaveTeamMember(ctx context.Context, m core.TeamMember) error
		GetTeamMember(ctx context.Context, id string) (core.TeamMember, error)
		ListTeamMembers(ctx context.Context) ([]core.TeamMember, error)
	}

	// Store is everything the application reads and writes.
	Store interface {
		ExpenseReader
		AccountStore
		SalesStore
		TeamStore
	}

	// Publisher hands submitted records to downstream consumers.
	Publisher interface {
		PublishRecordSubmitted(ctx context.Context, kind RecordKind, id string) error
	}

	// RowAppender appends one row to a named sheet.
	RowAppender interface {
		AppendRow(ctx context.Context, sheet string, row []any) (string, error)
	}
)

// RecordKind names the type of a submitted record.
type RecordKind string

const (
	KindSale       RecordKind = "sale"
	KindTeamMember RecordKind = "team_member"
)
