package routers

import (
	"clinica-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController, appointmentController *controllers.AppointmentController, surveyController *controllers.SurveyController) {
	router.Get("/", patientController.ListPatients)
	router.Post("/", patientController.CreatePatient)
	router.Get("/{id}", patientController.GetPatient)
	router.Patch("/{id}", patientController.UpdatePatient)
	router.Delete("/{id}", patientController.DeletePatient)
	router.Put("/{id}/status", patientController.ChangeStatus)
	router.Post("/{id}/follow-up", patientController.SetFollowUp)
	router.Get("/{id}/activity", patientController.ListActivity)
	router.Get("/{id}/appointments", appointmentController.ListPatientAppointments)
	router.Get("/{id}/survey-submissions", surveyController.ListPatientSubmissions)
}
