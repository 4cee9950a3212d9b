package contracts

import "github.com/rcarvalho-pb/fiadopay-go/internal/domain/event"

type EventRecorder interface {
	Record(event.Event) error
}

type EventPublisher interface {
	Publish(event.Event) error
}
