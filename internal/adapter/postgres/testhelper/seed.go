package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// ActionSeed describes an action to insert. Zero values mean: no channel,
// no outcome, created now.
type ActionSeed struct {
	ActionType domain.ActionType
	Channel    domain.Channel
	Outcome    domain.Outcome
	Note       string
	CreatedAt  time.Time
}

// SeedAction inserts an action built through domain.NewAction and returns it.
func SeedAction(t *testing.T, pool *pgxpool.Pool, seed ActionSeed) domain.Action {
	t.Helper()

	p := domain.NewActionParams{
		ID:         uuid.NewString(),
		ActionType: seed.ActionType,
		Note:       seed.Note,
		CreatedAt:  seed.CreatedAt,
	}
	if p.ActionType == "" {
		p.ActionType = domain.ActionTypeDM
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if seed.Channel != "" {
		c := seed.Channel
		p.Channel = &c
	}
	if seed.Outcome != "" {
		o := seed.Outcome
		p.Outcome = &o
	}
	a := domain.NewAction(p)

	var channel, outcome *string
	if a.Channel != nil {
		s := string(*a.Channel)
		channel = &s
	}
	if a.Outcome != nil {
		s := string(*a.Outcome)
		outcome = &s
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO actions (id, action_type, channel, surface, note, created_at, status, outcome, has_response, is_lead, revenue)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, string(a.ActionType), channel, string(a.Surface), a.Note, a.CreatedAt,
		string(a.Status), outcome, a.HasResponse, a.IsLead, a.Revenue,
	)
	if err != nil {
		t.Fatalf("testhelper: seed action: %v", err)
	}

	return a
}
