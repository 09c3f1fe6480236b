package action

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

// MaxNoteLength is the longest note accepted, in characters.
const MaxNoteLength = 140

type actionRepo interface {
	Create(ctx context.Context, a *domain.Action) (*domain.Action, error)
	GetByID(ctx context.Context, id string) (*domain.Action, error)
	List(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error)
	Update(ctx context.Context, id string, patch domain.ActionPatch) (*domain.Action, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the logging and editing operations on actions.
type Service struct {
	actions actionRepo
	tx      txManager
	log     *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService creates a new Action service.
func NewService(
	log *slog.Logger,
	actions actionRepo,
	tx txManager,
) *Service {
	return &Service{
		actions: actions,
		tx:      tx,
		log:     log.With("service", "action"),
		now:     time.Now,
		newID:   newActionID,
	}
}
