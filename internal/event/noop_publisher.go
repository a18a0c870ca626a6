package event

import "context"

// NoopPublisher satisfies Publisher when no broker is configured. The HTTP
// core stays fully functional without RabbitMQ.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (*NoopPublisher) PublishEntryRecorded(context.Context, EntryRecordedEvent) error {
	return nil
}

func (*NoopPublisher) PublishLoanExpiring(context.Context, LoanExpiringEvent) error {
	return nil
}
