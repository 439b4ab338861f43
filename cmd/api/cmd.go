package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/budgetbot/backend/internal/bootstrap"
	"github.com/budgetbot/backend/internal/config"
	"github.com/budgetbot/backend/internal/handlers"
	"github.com/budgetbot/backend/internal/response"
	"github.com/budgetbot/backend/internal/router"
	"github.com/budgetbot/backend/internal/services"
	"github.com/budgetbot/backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	estore := store.NewExpenseStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore)
	eserv := services.NewExpenseService(estore)
	pserv := services.NewParserService(bs.Groq, bs.Classifier)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.ExpenseSvc = eserv
	deps.ParserSvc = pserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
