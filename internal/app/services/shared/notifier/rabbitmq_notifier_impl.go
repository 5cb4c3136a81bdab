package notifier

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/monitoring"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher is the part of *amqp.Channel the notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type rabbitMQNotifier struct {
	ch        Publisher
	confirms  <-chan amqp.Confirmation
	queueName string
	mu        sync.Mutex
	Metrics   *monitoring.MetricsCollector
	Log       *zap.Logger
}

// NewRabbitMQNotifier puts ch into confirm mode; Publish returns only after
// the broker acknowledged the message.
func NewRabbitMQNotifier(ch *amqp.Channel, queueName string, metrics *monitoring.MetricsCollector, logger *zap.Logger) (contracts.Notifier, error) {
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}
	return &rabbitMQNotifier{
		ch:        ch,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		queueName: queueName,
		Metrics:   metrics,
		Log:       logger,
	}, nil
}

func NewNotifierWithPublisher(publisher Publisher, confirms <-chan amqp.Confirmation, queueName string, logger *zap.Logger) contracts.Notifier {
	return &rabbitMQNotifier{
		ch:        publisher,
		confirms:  confirms,
		queueName: queueName,
		Log:       logger,
	}
}

func (n *rabbitMQNotifier) Publish(ctx context.Context, event string, data interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(models.DomainEvent{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		RequestID:  requestID,
		Data:       data,
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         event,
		Headers:      amqp.Table{"request_id": requestID},
		Body:         body,
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.publishAndConfirm(ctx, msg)
	n.recordPublish(event, err == nil)
	if err != nil {
		n.Log.Error("rabbitMQNotifier.Publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, n.queueName),
			zap.String(constvars.LoggingEventKey, event),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, n.queueName)
	}

	n.Log.Info("rabbitMQNotifier.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, n.queueName),
		zap.String(constvars.LoggingEventKey, event),
	)
	return nil
}

func (n *rabbitMQNotifier) publishAndConfirm(ctx context.Context, msg amqp.Publishing) error {
	if err := n.ch.PublishWithContext(ctx, "", n.queueName, false, false, msg); err != nil {
		return err
	}
	select {
	case confirmed, ok := <-n.confirms:
		if !ok {
			return fmt.Errorf("confirmation channel closed")
		}
		if !confirmed.Ack {
			return fmt.Errorf("message not confirmed")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *rabbitMQNotifier) recordPublish(event string, success bool) {
	if n.Metrics != nil {
		n.Metrics.RecordEventPublished(event, success)
	}
}
