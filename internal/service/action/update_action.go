package action

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// UpdateAction applies a partial update. Editing the outcome does not
// recompute HasResponse, IsLead or Status. Status only moves to completed;
// any other change returns domain.ErrConflict. Setting the current status
// again changes nothing.
func (s *Service) UpdateAction(ctx context.Context, id string, input UpdateActionInput) (*domain.Action, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Action
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.actions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get action: %w", err)
		}

		patch := input.patch()
		if patch.Status != nil {
			switch *patch.Status {
			case current.Status:
				patch.Status = nil
			case domain.StatusCompleted:
			default:
				return fmt.Errorf("%w: status %s cannot change to %s", domain.ErrConflict, current.Status, *patch.Status)
			}
		}
		if patch.IsEmpty() {
			updated = current
			return nil
		}

		updated, err = s.actions.Update(ctx, id, patch)
		if err != nil {
			return fmt.Errorf("update action: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "action updated",
		slog.String("action_id", updated.ID),
		slog.String("status", string(updated.Status)),
		slog.Int64("revenue", updated.Revenue),
	)

	return updated, nil
}

// CompleteAction marks an action completed.
func (s *Service) CompleteAction(ctx context.Context, id string) (*domain.Action, error) {
	completed := string(domain.StatusCompleted)
	return s.UpdateAction(ctx, id, UpdateActionInput{Status: &completed})
}
