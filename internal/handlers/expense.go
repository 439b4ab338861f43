package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/budgetbot/backend/internal/dto"
	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/internal/middleware"
	"github.com/budgetbot/backend/internal/response"
)

type expenseHandlers struct {
	ResponseHandler response.ResponseHandler
	ExpenseSvc      ExpenseService
	ParserSvc       ParserService
}

func NewExpenseHandlers(deps *Deps) *expenseHandlers {
	return &expenseHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExpenseSvc:      deps.ExpenseSvc,
		ParserSvc:       deps.ParserSvc,
	}
}

func (h *expenseHandlers) ExpenseRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/{expenseID}", h.Delete)
	r.Post("/parse", h.Parse)
	r.Get("/breakdown", h.Breakdown)
	return r
}

func (h *expenseHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	expense, err := h.ExpenseSvc.Create(r.Context(), uid, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, expense)
}

func (h *expenseHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	expenses, err := h.ExpenseSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, expenses)
}

func (h *expenseHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	expenseID := chi.URLParam(r, "expenseID")

	if err := h.ExpenseSvc.Delete(r.Context(), uid, expenseID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// Parse runs the pipeline without persisting, returning the candidate for
// the form to prefill.
func (h *expenseHandlers) Parse(w http.ResponseWriter, r *http.Request) {
	var body dto.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	if body.Message == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("message is required"))
		return
	}

	candidate, err := h.ParserSvc.Parse(r.Context(), body.Message)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, candidate)
}

func (h *expenseHandlers) Breakdown(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	from, err := parseDateParam(r, "from")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	result, err := h.ExpenseSvc.Breakdown(r.Context(), uid, from, to)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func parseDateParam(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errs.NewValidationError(key + " must be YYYY-MM-DD")
	}
	return &t, nil
}
