package contracts

import (
	"clinica-service/internal/app/models"
	"context"
)

type AuditRepository interface {
	Record(ctx context.Context, event *models.AuditEvent) error
	ListByEntity(ctx context.Context, entity, entityID string, limit int) ([]models.AuditEvent, error)
}
