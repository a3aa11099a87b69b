package reporting

import (
	"fmt"
	"log"
	"net/http"
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

// Setup setups the routes handled by reporting context.
func Setup(router *chi.Mux, logger *log.Logger, authorizer auth.Authorizer, dbConn database.Connection) {
	handler := &httpHandler{logger: logger, authorizer: authorizer, service: NewService(dbConn)}

	// protected routes, only for administrators
	router.Group(func(group chi.Router) {
		group.Use(auth.JwtValidator(authorizer))
		group.Use(auth.AllowedRole(authorizer, auth.AdminRole))
		group.Get("/api/v1/admin/statistics", handler.GetStatistics)
		group.Get("/api/v1/admin/dashboard", handler.GetDashboard)
	})
}

func (h httpHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	statisticsType := r.URL.Query().Get("type")
	if statisticsType == "" {
		statisticsType = TypeDaily
	}
	today := time.Now().Format("2006-01-02")
	startDate := r.URL.Query().Get("start_date")
	if startDate == "" {
		startDate = today
	}
	endDate := r.URL.Query().Get("end_date")
	if endDate == "" {
		endDate = today
	}
	stats, err := h.service.GetStatistics(r.Context(), statisticsType, startDate, endDate)
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, stats, "")
}

func (h httpHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		logging.PrintlnError(h.logger, fmt.Sprint(r.Context().Value(middleware.RequestIDKey), " ", err))
		api.WriteFailure(w, api.FailureMessage("query failed", err))
		return
	}
	api.WriteSuccess(w, dashboard, "")
}
