package directory

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"clinic-desk/internal/api"
	"clinic-desk/internal/auth"
	"clinic-desk/internal/database"
	"clinic-desk/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type httpHandler struct {
	service Service
	logger  *log.Logger
}

// Setup setups the routes handled by directory context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, service: NewService(dbConn)}

	// public lookups, used by the booking and reception pages
	router.Group(func(group chi.Router) {
		group.Get("/api/v1/departments", handler.GetDepartments)
		group.Get("/api/v1/rooms", handler.GetRooms)
	})

	// protected routes, only for administrators
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.AdminRole))
		group.Get("/api/v1/admin/doctors", handler.GetDoctors)
		group.Get("/api/v1/admin/employees", handler.GetEmployees)
	})
}

func (h httpHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.GetDepartments(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, departments, "")
}

func (h httpHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	var deptID *int64
	if raw := r.URL.Query().Get("dept_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
			api.WriteFailure(w, "query failed: invalid department identifier")
			return
		}
		deptID = &parsed
	}
	rooms, err := h.service.GetRooms(r.Context(), deptID)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, rooms, "")
}

func (h httpHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.GetDoctors(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, doctors, "")
}

func (h httpHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.GetEmployees(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, employees, "")
}
