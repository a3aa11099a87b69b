package registration

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

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

// Setup setups the routes handled by registration context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(dbConn)}

	// protected routes, only for receptionists
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.ReceptionistRole))
		group.Post("/api/v1/visits", handler.RegisterVisit)
		group.Get("/api/v1/visits", handler.GetVisits)
		group.Get("/api/v1/patients/{patientID}/history", handler.GetPatientHistory)
	})

	// protected routes, only for administrators
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.AdminRole))
		group.Get("/api/v1/admin/patients", handler.SearchPatients)
	})
}

func (h httpHandler) RegisterVisit(w http.ResponseWriter, r *http.Request) {
	registration := new(RegistrationRequest)
	if err := json.NewDecoder(r.Body).Decode(registration); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, "registration failed: invalid request body")
		return
	}
	result, err := h.service.RegisterVisit(r.Context(), *registration)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("registration failed", err))
		return
	}
	api.WriteSuccess(w, result, "registration successful")
}

func (h httpHandler) GetVisits(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	status := r.URL.Query().Get("status")
	visits, err := h.service.GetVisits(r.Context(), date, status)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, visits, "")
}

func (h httpHandler) GetPatientHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.ParseInt(chi.URLParam(r, "patientID"), 10, 64)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", ErrInvalidIdentifier))
		return
	}
	history, err := h.service.GetPatientHistory(r.Context(), patientID)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, history, "")
}

func (h httpHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	patients, err := h.service.SearchPatients(r.Context(), keyword)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, patients, "")
}
