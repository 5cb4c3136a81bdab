package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Entity    string             `bson:"entity" json:"entity"`
	EntityID  string             `bson:"entityId" json:"entity_id"`
	Action    string             `bson:"action" json:"action"`
	From      string             `bson:"from,omitempty" json:"from,omitempty"`
	To        string             `bson:"to,omitempty" json:"to,omitempty"`
	ActorID   string             `bson:"actorId,omitempty" json:"actor_id,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
