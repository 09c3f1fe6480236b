package action

import (
	"context"
	"fmt"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// ListActions returns actions most-recent-first, optionally limited to one UTC day.
func (s *Service) ListActions(ctx context.Context, input ListActionsInput) ([]domain.Action, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actions, err := s.actions.List(ctx, input.filter())
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	return actions, nil
}

// GetAction returns a single action by ID.
func (s *Service) GetAction(ctx context.Context, id string) (*domain.Action, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}

	a, err := s.actions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get action: %w", err)
	}
	return a, nil
}
