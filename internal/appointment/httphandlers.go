package appointment

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"clinic-desk/internal/api"
	"clinic-desk/internal/database"
	"clinic-desk/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type httpHandler struct {
	service Service
	logger  *log.Logger
}

// Setup setups the routes handled by appointment context. Bookings are made
// and read without authentication; the phone number acts as the lookup key.
func Setup(router *chi.Mux, logger *log.Logger, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, service: NewService(dbConn)}

	router.Group(func(group chi.Router) {
		group.Post("/api/v1/appointments", handler.CreateAppointment)
		group.Get("/api/v1/appointments", handler.GetAppointments)
		group.Put("/api/v1/appointments/{apptID}/cancel", handler.CancelAppointment)
	})
}

func (h httpHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	booking := new(BookingRequest)
	if err := json.NewDecoder(r.Body).Decode(booking); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, "booking failed: invalid request body")
		return
	}
	result, err := h.service.CreateAppointment(r.Context(), *booking)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("booking failed", err))
		return
	}
	api.WriteSuccess(w, result, "booking successful")
}

func (h httpHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		api.WriteFailure(w, "query failed: phone is required")
		return
	}
	appointments, err := h.service.GetAppointments(r.Context(), phone)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, appointments, "")
}

func (h httpHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	apptID, err := strconv.ParseInt(chi.URLParam(r, "apptID"), 10, 64)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("cancellation failed", ErrInvalidIdentifier))
		return
	}
	if err = h.service.CancelAppointment(r.Context(), apptID); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("cancellation failed", err))
		return
	}
	api.WriteSuccess(w, nil, "appointment cancelled")
}
