package contracts

import (
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"context"
)

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context, filter *requests.AppointmentFilter) (*responses.AppointmentList, error)
	GetAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error)
	ChangeStatus(ctx context.Context, appointmentID string, request *requests.ChangeAppointmentStatus) (*responses.Appointment, error)
	GetHistory(ctx context.Context, appointmentID string) ([]models.AppointmentHistory, error)
}

type AppointmentBackendClient interface {
	FindAppointments(ctx context.Context, filter *requests.AppointmentFilter) ([]models.Appointment, int, error)
	CountAppointments(ctx context.Context, filter *requests.AppointmentFilter) (int, error)
	FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID, expectedStatus string, fields map[string]interface{}) (*models.Appointment, error)
}

type AppointmentHistoryBackendClient interface {
	FindHistoryByAppointmentID(ctx context.Context, appointmentID string) ([]models.AppointmentHistory, error)
	CreateHistory(ctx context.Context, entry *models.AppointmentHistory) error
}
