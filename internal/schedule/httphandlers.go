package schedule

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

// Setup setups the routes handled by schedule context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(dbConn)}

	// protected routes, only for administrators
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.AdminRole))
		group.Post("/api/v1/admin/schedules", handler.CreateSchedule)
		group.Get("/api/v1/admin/schedules", handler.GetSchedules)
	})
}

func (h httpHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := new(ScheduleRequest)
	if err := json.NewDecoder(r.Body).Decode(schedule); err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, "scheduling failed: invalid request body")
		return
	}
	result, err := h.service.CreateSchedule(r.Context(), *schedule)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("scheduling failed", err))
		return
	}
	api.WriteSuccess(w, result, "schedule published")
}

func (h httpHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	workDate := r.URL.Query().Get("work_date")
	schedules, err := h.service.GetSchedules(r.Context(), workDate)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, schedules, "")
}
