package interfaces

import "context"

// IQuoteDispatcher hands a persisted quote id to the asynchronous worker.
type IQuoteDispatcher interface {
	Dispatch(ctx context.Context, quoteID string) error
}

// IQuoteNotifier announces a processed quote to its conversation.
type IQuoteNotifier interface {
	Publish(ctx context.Context, quoteID string) error
}
