package audit

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	auditRepositoryInstance contracts.AuditRepository
	onceAuditRepository     sync.Once
)

type auditMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewAuditMongoRepository(db *mongo.Database, logger *zap.Logger) contracts.AuditRepository {
	onceAuditRepository.Do(func() {
		auditRepositoryInstance = &auditMongoRepository{
			Collection: db.Collection(constvars.MongoCollectionAuditEvents),
			Log:        logger,
		}
	})
	return auditRepositoryInstance
}

func (r *auditMongoRepository) Record(ctx context.Context, event *models.AuditEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if _, err := r.Collection.InsertOne(ctx, event); err != nil {
		r.Log.Error("auditMongoRepository.Record error inserting document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityKey, event.Entity),
			zap.String(constvars.LoggingEntityIDKey, event.EntityID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBInsertDocument(err)
	}

	r.Log.Info("auditMongoRepository.Record succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityKey, event.Entity),
		zap.String(constvars.LoggingEntityIDKey, event.EntityID),
		zap.String(constvars.LoggingOperationKey, event.Action),
	)
	return nil
}

func (r *auditMongoRepository) ListByEntity(ctx context.Context, entity, entityID string, limit int) ([]models.AuditEvent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"entity": entity, "entityId": entityID}, findOptions)
	if err != nil {
		r.Log.Error("auditMongoRepository.ListByEntity error finding documents",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCollectionKey, constvars.MongoCollectionAuditEvents),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	events := []models.AuditEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		r.Log.Error("auditMongoRepository.ListByEntity error iterating documents",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	r.Log.Info("auditMongoRepository.ListByEntity succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityKey, entity),
		zap.String(constvars.LoggingEntityIDKey, entityID),
		zap.Int(constvars.LoggingResultCountKey, len(events)),
	)
	return events, nil
}
