package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/budgetbot/backend/internal/handlers"
	"github.com/budgetbot/backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)
	r.Use(cors.AllowAll().Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ush := handlers.NewUserHandlers(deps)
	exh := handlers.NewExpenseHandlers(deps)
	wh := handlers.NewWebhookHandlers(deps)

	// Authenticated web API
	authmw := middleware.NewMiddleware(deps.Firebase)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.FirebaseAuth)
		pr.Mount("/users", ush.UserRoutes())
		pr.Mount("/expenses", exh.ExpenseRoutes())
	})

	// Messaging webhook authenticates by sender phone number, not by token
	r.Mount("/whatsapp", wh.WebhookRoutes())

	return r
}
