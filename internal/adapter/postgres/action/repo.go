// Package action implements the action store using PostgreSQL.
package action

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/outbound-tracker/internal/adapter/postgres"
	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

const table = "actions"

var columns = []string{
	"id", "action_type", "channel", "surface", "note", "created_at",
	"status", "outcome", "has_response", "is_lead", "revenue",
}

var (
	psql      = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	returning = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides action persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new action repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// actionRow is the scan target for the actions table.
type actionRow struct {
	ID          string    `db:"id"`
	ActionType  string    `db:"action_type"`
	Channel     *string   `db:"channel"`
	Surface     string    `db:"surface"`
	Note        string    `db:"note"`
	CreatedAt   time.Time `db:"created_at"`
	Status      string    `db:"status"`
	Outcome     *string   `db:"outcome"`
	HasResponse bool      `db:"has_response"`
	IsLead      bool      `db:"is_lead"`
	Revenue     int64     `db:"revenue"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an action by primary key.
// Returns domain.ErrNotFound if the action does not exist.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Action, error) {
	query, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select action: %w", err)
	}

	var row actionRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "action", id)
	}

	a := toDomain(row)
	return &a, nil
}

// List returns actions ordered by created_at DESC, id DESC. A filter day
// limits the result to that UTC calendar day.
func (r *Repo) List(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
	b := psql.Select(columns...).From(table).OrderBy("created_at DESC", "id DESC")
	if filter.Day != nil {
		start := domain.DayStart(*filter.Day)
		b = b.Where(sq.GtOrEq{"created_at": start}).Where(sq.Lt{"created_at": start.AddDate(0, 0, 1)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list actions: %w", err)
	}

	var rows []actionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}

	actions := make([]domain.Action, len(rows))
	for i, row := range rows {
		actions[i] = toDomain(row)
	}
	return actions, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new action and returns the persisted record.
func (r *Repo) Create(ctx context.Context, a *domain.Action) (*domain.Action, error) {
	row := fromDomain(*a)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(row.ID, row.ActionType, row.Channel, row.Surface, row.Note, row.CreatedAt,
			row.Status, row.Outcome, row.HasResponse, row.IsLead, row.Revenue).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert action: %w", err)
	}

	var out actionRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "action", a.ID)
	}

	created := toDomain(out)
	return &created, nil
}

// Update applies the set fields of patch and returns the updated record.
// Returns domain.ErrNotFound if the action does not exist.
func (r *Repo) Update(ctx context.Context, id string, patch domain.ActionPatch) (*domain.Action, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := sq.Eq{}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Note != nil {
		set["note"] = *patch.Note
	}
	if patch.Revenue != nil {
		set["revenue"] = *patch.Revenue
	}
	if patch.Outcome != nil {
		set["outcome"] = string(*patch.Outcome)
	}

	query, args, err := psql.Update(table).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update action: %w", err)
	}

	var out actionRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "action", id)
	}

	updated := toDomain(out)
	return &updated, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toDomain(row actionRow) domain.Action {
	a := domain.Action{
		ID:          row.ID,
		ActionType:  domain.ActionType(row.ActionType),
		Surface:     domain.Surface(row.Surface),
		Note:        row.Note,
		CreatedAt:   row.CreatedAt.UTC(),
		Status:      domain.Status(row.Status),
		HasResponse: row.HasResponse,
		IsLead:      row.IsLead,
		Revenue:     row.Revenue,
	}
	if row.Channel != nil {
		c := domain.Channel(*row.Channel)
		a.Channel = &c
	}
	if row.Outcome != nil {
		o := domain.Outcome(*row.Outcome)
		a.Outcome = &o
	}
	return a
}

func fromDomain(a domain.Action) actionRow {
	row := actionRow{
		ID:          a.ID,
		ActionType:  string(a.ActionType),
		Surface:     string(a.Surface),
		Note:        a.Note,
		CreatedAt:   a.CreatedAt,
		Status:      string(a.Status),
		HasResponse: a.HasResponse,
		IsLead:      a.IsLead,
		Revenue:     a.Revenue,
	}
	if a.Channel != nil {
		c := string(*a.Channel)
		row.Channel = &c
	}
	if a.Outcome != nil {
		o := string(*a.Outcome)
		row.Outcome = &o
	}
	return row
}
