package contracts

import (
	"clinica-service/internal/pkg/dto/responses"
	"context"
)

type DashboardUsecase interface {
	GetSummary(ctx context.Context, doctorID string) (*responses.DashboardSummary, error)
	GetFollowUps(ctx context.Context, limit int) ([]responses.Patient, error)
	GetUpcoming(ctx context.Context, days int) ([]responses.Appointment, error)
}
