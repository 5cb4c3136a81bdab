package routers

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/delivery/http/controllers"
	"clinica-service/internal/app/delivery/http/middlewares"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/utils"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	avatarLimiter *middlewares.RateLimiter,
	patientController *controllers.PatientController,
	appointmentController *controllers.AppointmentController,
	surveyController *controllers.SurveyController,
	dashboardController *controllers.DashboardController,
	profileController *controllers.ProfileController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))

	if middlewares.Metrics != nil {
		router.Use(middlewares.Metrics.HTTPMiddleware)
	}
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	router.Get("/health", health(internalConfig))
	if middlewares.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", middlewares.Metrics.Handler())
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	bodyLimit := int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.Authorize)
		if bodyLimit > 0 {
			r.Use(chiMiddleware.RequestSize(bodyLimit))
		}

		r.Route("/patients", func(r chi.Router) {
			attachPatientRoutes(r, patientController, appointmentController, surveyController)
		})
		r.Route("/appointments", func(r chi.Router) {
			attachAppointmentRoutes(r, appointmentController)
		})
		r.Route("/surveys", func(r chi.Router) {
			attachSurveyRoutes(r, surveyController)
		})
		r.Route("/dashboard", func(r chi.Router) {
			attachDashboardRoutes(r, dashboardController)
		})
		attachProfileRoutes(r, avatarLimiter, profileController)
	})
}

func health(internalConfig *config.InternalConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, map[string]string{
			"status":  "ok",
			"version": internalConfig.App.Version,
		})
	}
}
