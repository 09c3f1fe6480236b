package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
	"github.com/heartmarshall/outbound-tracker/internal/service/action"
)

// actionService defines the minimal interface needed by ActionHandler.
type actionService interface {
	LogAction(ctx context.Context, input action.LogActionInput) (*domain.Action, error)
	ListActions(ctx context.Context, input action.ListActionsInput) ([]domain.Action, error)
	GetAction(ctx context.Context, id string) (*domain.Action, error)
	UpdateAction(ctx context.Context, id string, input action.UpdateActionInput) (*domain.Action, error)
	CompleteAction(ctx context.Context, id string) (*domain.Action, error)
}

// ActionHandler serves the action log endpoints.
type ActionHandler struct {
	svc actionService
	log *slog.Logger
}

// NewActionHandler creates an ActionHandler.
func NewActionHandler(svc actionService, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{svc: svc, log: logger.With("handler", "actions")}
}

type logActionRequest struct {
	ActionType string  `json:"actionType"`
	Channel    *string `json:"channel"`
	Surface    string  `json:"surface"`
	Note       string  `json:"note"`
	Outcome    *string `json:"outcome"`
}

type updateActionRequest struct {
	Status  *string `json:"status"`
	Note    *string `json:"note"`
	Revenue *int64  `json:"revenue"`
	Outcome *string `json:"outcome"`
}

// actionResponse is the wire form of an action. Revenue is in cents.
type actionResponse struct {
	ID          string    `json:"id"`
	ActionType  string    `json:"actionType"`
	Channel     *string   `json:"channel"`
	Surface     string    `json:"surface"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
	Outcome     *string   `json:"outcome"`
	HasResponse bool      `json:"hasResponse"`
	IsLead      bool      `json:"isLead"`
	Revenue     int64     `json:"revenue"`
}

type listActionsResponse struct {
	Actions []actionResponse `json:"actions"`
	Count   int              `json:"count"`
}

// List handles GET /api/actions[?date=YYYY-MM-DD].
func (h *ActionHandler) List(w http.ResponseWriter, r *http.Request) {
	var input action.ListActionsInput
	if d := r.URL.Query().Get("date"); d != "" {
		input.Date = &d
	}

	actions, err := h.svc.ListActions(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := listActionsResponse{Actions: make([]actionResponse, 0, len(actions)), Count: len(actions)}
	for i := range actions {
		resp.Actions = append(resp.Actions, toActionResponse(&actions[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/actions.
func (h *ActionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req logActionRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.svc.LogAction(r.Context(), action.LogActionInput{
		ActionType: req.ActionType,
		Channel:    req.Channel,
		Surface:    req.Surface,
		Note:       req.Note,
		Outcome:    req.Outcome,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toActionResponse(a))
}

// Get handles GET /api/actions/{id}.
func (h *ActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAction(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActionResponse(a))
}

// Update handles PATCH /api/actions/{id}.
func (h *ActionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateActionRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.svc.UpdateAction(r.Context(), r.PathValue("id"), action.UpdateActionInput{
		Status:  req.Status,
		Note:    req.Note,
		Revenue: req.Revenue,
		Outcome: req.Outcome,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActionResponse(a))
}

// Complete handles POST /api/actions/{id}/complete.
func (h *ActionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.CompleteAction(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActionResponse(a))
}

func toActionResponse(a *domain.Action) actionResponse {
	resp := actionResponse{
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
		resp.Channel = &c
	}
	if a.Outcome != nil {
		o := string(*a.Outcome)
		resp.Outcome = &o
	}
	return resp
}
