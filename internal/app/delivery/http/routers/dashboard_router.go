package routers

import (
	"clinica-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDashboardRoutes(router chi.Router, dashboardController *controllers.DashboardController) {
	router.Get("/summary", dashboardController.GetSummary)
	router.Get("/follow-ups", dashboardController.GetFollowUps)
	router.Get("/upcoming", dashboardController.GetUpcoming)
}
