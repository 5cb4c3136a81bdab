package contracts

import "context"

type Notifier interface {
	Publish(ctx context.Context, event string, data interface{}) error
}
