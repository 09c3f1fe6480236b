package action

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

var fixedNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// newTestService creates a Service with the given mock, a fixed clock and predictable ids.
func newTestService(t *testing.T, mock *actionRepoMock) *Service {
	t.Helper()
	return &Service{
		actions: mock,
		tx:      passthroughTx{},
		log:     slog.New(slog.NewTextHandler(nil, &slog.HandlerOptions{Level: slog.LevelError})),
		now:     func() time.Time { return fixedNow },
		newID:   func() string { return "act-1" },
	}
}

// passthroughTx runs the callback directly.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func echoCreate() func(ctx context.Context, a *domain.Action) (*domain.Action, error) {
	return func(ctx context.Context, a *domain.Action) (*domain.Action, error) {
		out := *a
		return &out, nil
	}
}

// ---------------------------------------------------------------------------
// LogAction
// ---------------------------------------------------------------------------

func TestLogAction_Success(t *testing.T) {
	t.Parallel()

	mock := &actionRepoMock{CreateFunc: echoCreate()}
	svc := newTestService(t, mock)

	got, err := svc.LogAction(context.Background(), LogActionInput{
		ActionType: "dm",
		Channel:    strPtr("linkedin"),
		Note:       "  asked about pricing  ",
		Outcome:    strPtr("qualified"),
	})
	require.NoError(t, err)

	assert.Equal(t, "act-1", got.ID)
	assert.Equal(t, domain.ActionTypeDM, got.ActionType)
	assert.Equal(t, domain.SurfacePublic, got.Surface)
	assert.Equal(t, "asked about pricing", got.Note)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.True(t, got.HasResponse)
	assert.True(t, got.IsLead)
	assert.Equal(t, domain.StatusLogged, got.Status)
	assert.Zero(t, got.Revenue)
	require.Len(t, mock.CreateCalls(), 1)
}

func TestLogAction_StatusDerivation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		actionType string
		outcome    *string
		want       domain.Status
	}{
		{"followup without outcome", "followup", nil, domain.StatusNeedsFollowUp},
		{"followup closed", "followup", strPtr("closed-won"), domain.StatusCompleted},
		{"comment closed lost", "comment", strPtr("closed-lost"), domain.StatusCompleted},
		{"post plain", "post", nil, domain.StatusLogged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, &actionRepoMock{CreateFunc: echoCreate()})
			got, err := svc.LogAction(context.Background(), LogActionInput{ActionType: tt.actionType, Outcome: tt.outcome})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestLogAction_ValidationCollectsAllErrors(t *testing.T) {
	t.Parallel()

	mock := &actionRepoMock{}
	svc := newTestService(t, mock)

	_, err := svc.LogAction(context.Background(), LogActionInput{
		ActionType: "call",
		Channel:    strPtr("myspace"),
		Surface:    "internal",
		Outcome:    strPtr("maybe"),
		Note:       strings.Repeat("x", MaxNoteLength+1),
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 5)
	assert.Empty(t, mock.CreateCalls())
}

func TestLogAction_MissingType(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &actionRepoMock{})
	_, err := svc.LogAction(context.Background(), LogActionInput{})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "actionType", ve.Errors[0].Field)
	assert.Equal(t, "required", ve.Errors[0].Message)
}

func TestLogAction_NoteLimitCountsCharacters(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &actionRepoMock{CreateFunc: echoCreate()})
	_, err := svc.LogAction(context.Background(), LogActionInput{
		ActionType: "post",
		Note:       strings.Repeat("ё", MaxNoteLength),
	})
	require.NoError(t, err)
}

func TestLogAction_NoteLimitCountsAstralAsTwo(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &actionRepoMock{CreateFunc: echoCreate()})

	_, err := svc.LogAction(context.Background(), LogActionInput{
		ActionType: "post",
		Note:       strings.Repeat("🚀", MaxNoteLength/2),
	})
	require.NoError(t, err)

	_, err = svc.LogAction(context.Background(), LogActionInput{
		ActionType: "post",
		Note:       strings.Repeat("🚀", MaxNoteLength/2+1),
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "note", ve.Errors[0].Field)
}

func TestLogAction_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("insert failed")
	svc := newTestService(t, &actionRepoMock{
		CreateFunc: func(ctx context.Context, a *domain.Action) (*domain.Action, error) { return nil, repoErr },
	})

	_, err := svc.LogAction(context.Background(), LogActionInput{ActionType: "dm"})
	require.ErrorIs(t, err, repoErr)
}

// ---------------------------------------------------------------------------
// ListActions / GetAction
// ---------------------------------------------------------------------------

func TestListActions_DateFilter(t *testing.T) {
	t.Parallel()

	mock := &actionRepoMock{
		ListFunc: func(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
			return []domain.Action{{ID: "a"}}, nil
		},
	}
	svc := newTestService(t, mock)

	got, err := svc.ListActions(context.Background(), ListActionsInput{Date: strPtr("2026-04-30")})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	calls := mock.ListCalls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Filter.Day)
	assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), *calls[0].Filter.Day)
}

func TestListActions_NoFilter(t *testing.T) {
	t.Parallel()

	mock := &actionRepoMock{
		ListFunc: func(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
			assert.Nil(t, filter.Day)
			return nil, nil
		},
	}
	_, err := newTestService(t, mock).ListActions(context.Background(), ListActionsInput{})
	require.NoError(t, err)
}

func TestListActions_BadDate(t *testing.T) {
	t.Parallel()

	mock := &actionRepoMock{}
	_, err := newTestService(t, mock).ListActions(context.Background(), ListActionsInput{Date: strPtr("30/04/2026")})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, mock.ListCalls())
}

func TestGetAction_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &actionRepoMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Action, error) { return nil, domain.ErrNotFound },
	})

	_, err := svc.GetAction(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// UpdateAction / CompleteAction
// ---------------------------------------------------------------------------

func storedAction(status domain.Status) *domain.Action {
	o := domain.OutcomeQualified
	return &domain.Action{
		ID:          "act-9",
		ActionType:  domain.ActionTypeDM,
		Surface:     domain.SurfacePublic,
		Status:      status,
		Outcome:     &o,
		HasResponse: true,
		IsLead:      true,
		CreatedAt:   fixedNow,
	}
}

func patchingRepo(current *domain.Action) *actionRepoMock {
	return &actionRepoMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Action, error) {
			out := *current
			return &out, nil
		},
		UpdateFunc: func(ctx context.Context, id string, patch domain.ActionPatch) (*domain.Action, error) {
			out := patch.Apply(*current)
			return &out, nil
		},
	}
}

func TestCompleteAction_Success(t *testing.T) {
	t.Parallel()

	mock := patchingRepo(storedAction(domain.StatusLogged))
	got, err := newTestService(t, mock).CompleteAction(context.Background(), "act-9")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.Len(t, mock.UpdateCalls(), 1)
	patch := mock.UpdateCalls()[0].Patch
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.StatusCompleted, *patch.Status)
}

func TestCompleteAction_AlreadyCompletedIsNoop(t *testing.T) {
	t.Parallel()

	mock := patchingRepo(storedAction(domain.StatusCompleted))
	got, err := newTestService(t, mock).CompleteAction(context.Background(), "act-9")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Empty(t, mock.UpdateCalls())
}

func TestUpdateAction_OutcomeDoesNotRecomputeFlags(t *testing.T) {
	t.Parallel()

	mock := patchingRepo(storedAction(domain.StatusLogged))
	got, err := newTestService(t, mock).UpdateAction(context.Background(), "act-9", UpdateActionInput{
		Outcome: strPtr("closed-lost"),
	})
	require.NoError(t, err)

	assert.True(t, got.OutcomeIs(domain.OutcomeClosedLost))
	assert.True(t, got.IsLead, "isLead keeps its creation value")
	assert.Equal(t, domain.StatusLogged, got.Status, "status keeps its creation value")
}

func TestUpdateAction_Revenue(t *testing.T) {
	t.Parallel()

	rev := int64(125000)
	mock := patchingRepo(storedAction(domain.StatusCompleted))
	got, err := newTestService(t, mock).UpdateAction(context.Background(), "act-9", UpdateActionInput{Revenue: &rev})
	require.NoError(t, err)
	assert.Equal(t, rev, got.Revenue)
}

func TestUpdateAction_Validation(t *testing.T) {
	t.Parallel()

	neg := int64(-1)
	tests := []struct {
		name  string
		input UpdateActionInput
		field string
	}{
		{"empty", UpdateActionInput{}, "body"},
		{"unknown status", UpdateActionInput{Status: strPtr("archived")}, "status"},
		{"negative revenue", UpdateActionInput{Revenue: &neg}, "revenue"},
		{"unknown outcome", UpdateActionInput{Outcome: strPtr("ghosted")}, "outcome"},
		{"long note", UpdateActionInput{Note: strPtr(strings.Repeat("n", MaxNoteLength+1))}, "note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &actionRepoMock{}
			_, err := newTestService(t, mock).UpdateAction(context.Background(), "act-9", tt.input)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
			assert.Empty(t, mock.GetByIDCalls())
		})
	}
}

func TestUpdateAction_StatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  domain.Status
		target   string
		conflict bool
	}{
		{"reopen completed", domain.StatusCompleted, "logged", true},
		{"logged to needs-followup", domain.StatusLogged, "needs-followup", true},
		{"needs-followup to logged", domain.StatusNeedsFollowUp, "logged", true},
		{"same status", domain.StatusNeedsFollowUp, "needs-followup", false},
		{"needs-followup to completed", domain.StatusNeedsFollowUp, "completed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := patchingRepo(storedAction(tt.current))
			got, err := newTestService(t, mock).UpdateAction(context.Background(), "act-9", UpdateActionInput{
				Status: strPtr(tt.target),
			})

			if tt.conflict {
				require.ErrorIs(t, err, domain.ErrConflict)
				assert.Empty(t, mock.UpdateCalls())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Status(tt.target), got.Status)
		})
	}
}

func TestUpdateAction_NotFound(t *testing.T) {
	t.Parallel()

	mock := &actionRepoMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Action, error) { return nil, domain.ErrNotFound },
	}
	_, err := newTestService(t, mock).CompleteAction(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, mock.UpdateCalls())
}
