package contracts

import (
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"context"
)

type PatientUsecase interface {
	ListPatients(ctx context.Context, filter *requests.PatientFilter) (*responses.PatientList, error)
	GetPatient(ctx context.Context, patientID string) (*responses.Patient, error)
	CreatePatient(ctx context.Context, request *requests.CreatePatient) (*responses.Patient, error)
	UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
	ChangeStatus(ctx context.Context, patientID string, request *requests.ChangePatientStatus) (*responses.Patient, error)
	SetFollowUp(ctx context.Context, patientID string) (*responses.Patient, error)
	ListActivity(ctx context.Context, patientID string, limit int) ([]models.AuditEvent, error)
}

type PatientBackendClient interface {
	FindPatients(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, int, error)
	FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindPatientsByIDs(ctx context.Context, patientIDs []string) ([]models.Patient, error)
	FindPatientsByStatus(ctx context.Context, status string, limit int) ([]models.Patient, error)
	CountPatients(ctx context.Context, status, doctorID string) (int, error)
	CreatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patientID, expectedStatus string, fields map[string]interface{}) (*models.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
}
