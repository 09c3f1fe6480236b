package action

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// LogAction records a new action. Derived flags and the initial status are
// computed here, once, and stored with the record.
func (s *Service) LogAction(ctx context.Context, input LogActionInput) (*domain.Action, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p := input.params()
	p.ID = s.newID()
	p.CreatedAt = s.now()
	a := domain.NewAction(p)

	created, err := s.actions.Create(ctx, &a)
	if err != nil {
		return nil, fmt.Errorf("create action: %w", err)
	}

	s.log.InfoContext(ctx, "action logged",
		slog.String("action_id", created.ID),
		slog.String("action_type", string(created.ActionType)),
		slog.String("status", string(created.Status)),
	)

	return created, nil
}

func newActionID() string {
	return uuid.NewString()
}
