package billing

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"clinic-desk/internal/api"
	"clinic-desk/internal/auth"
	"clinic-desk/internal/database"
	"clinic-desk/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type httpHandler struct {
	authorizer auth.Authorizer
	service    Service
	logger     *log.Logger
}

// Setup setups the routes handled by billing context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(dbConn)}

	// protected routes, only for receptionists
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.ReceptionistRole))
		group.Post("/api/v1/billings", handler.SettleVisit)
	})
}

func (h httpHandler) SettleVisit(w http.ResponseWriter, r *http.Request) {
	settlement := new(SettlementRequest)
	if err := json.NewDecoder(r.Body).Decode(settlement); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, "payment failed: invalid request body")
		return
	}
	user, err := h.authorizer.GetAuthenticatedUser(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	result, err := h.service.SettleVisit(r.Context(), user, *settlement)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("payment failed", err))
		return
	}
	api.WriteSuccess(w, result, "payment settled")
}
