package handlers

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/internal/models"
	"github.com/budgetbot/backend/pkg/logger"
)

// twimlReply is the markup envelope the messaging transport renders back to
// the sender.
type twimlReply struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

type webhookHandlers struct {
	UserSvc    UserService
	ExpenseSvc ExpenseService
	ParserSvc  ParserService
}

func NewWebhookHandlers(deps *Deps) *webhookHandlers {
	return &webhookHandlers{
		UserSvc:    deps.UserSvc,
		ExpenseSvc: deps.ExpenseSvc,
		ParserSvc:  deps.ParserSvc,
	}
}

func (h *webhookHandlers) WebhookRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/webhook", h.Incoming)
	return r
}

// Incoming handles a Twilio-style form post: Body carries the message text,
// From the sender as "whatsapp:+<number>". Every outcome is a 200 with a
// TwiML reply; the transport renders it to the user.
func (h *webhookHandlers) Incoming(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	message := r.FormValue("Body")
	from := r.FormValue("From")
	log.Info("incoming message", "from", from)

	candidate, err := h.ParserSvc.Parse(r.Context(), message)
	if err != nil {
		log.Error("message parse failed", "error", err)
		writeTwiML(w, "❌ Couldn't understand that. Try something like \"Spent 200 on groceries\".")
		return
	}

	phone := strings.TrimPrefix(from, "whatsapp:")
	user, err := h.UserSvc.GetByPhone(r.Context(), phone)
	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			writeTwiML(w, "❌ Your number is not registered. Please sign up on the web app first.")
			return
		}
		log.Error("sender lookup failed", "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	expense, err := h.ParserSvc.Assemble(r.Context(), user.UID, candidate, models.OriginMessaging)
	if err != nil {
		writeTwiML(w, "❌ Couldn't understand that. Try something like \"Spent 200 on groceries\".")
		return
	}

	stored, err := h.ExpenseSvc.Record(r.Context(), user.UID, expense)
	if err != nil {
		log.Error("failed to record expense from webhook", "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	amount := strconv.FormatFloat(stored.Amount, 'f', -1, 64)
	writeTwiML(w, "✅ "+amount+" for "+stored.Category+" recorded!")
}

func writeTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_ = xml.NewEncoder(w).Encode(twimlReply{Message: message})
}
