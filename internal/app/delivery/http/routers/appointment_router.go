package routers

import (
	"clinica-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, appointmentController *controllers.AppointmentController) {
	router.Get("/", appointmentController.ListAppointments)
	router.Post("/", appointmentController.CreateAppointment)
	router.Get("/{id}", appointmentController.GetAppointment)
	router.Patch("/{id}", appointmentController.UpdateAppointment)
	router.Put("/{id}/status", appointmentController.ChangeStatus)
	router.Get("/{id}/history", appointmentController.GetHistory)
}
