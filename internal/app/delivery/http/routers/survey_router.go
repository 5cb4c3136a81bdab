package routers

import (
	"clinica-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachSurveyRoutes(router chi.Router, surveyController *controllers.SurveyController) {
	router.Get("/", surveyController.ListSurveys)
	router.Get("/{slug}", surveyController.GetSurvey)
	router.Get("/{slug}/responses", surveyController.ListResponses)
	router.Post("/{slug}/responses", surveyController.SubmitAnswers)
}
