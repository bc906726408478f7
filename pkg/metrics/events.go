package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	InstructionBuiltEventName   = "InstructionBuilt"
	KeypairGeneratedEventName   = "KeypairGenerated"
	MessageVerifiedEventName    = "MessageVerified"
	RequestRateLimitedEventName = "RequestRateLimited"
)

// RecordEvent records a new event with a name and set of key-value pairs
func RecordEvent(ctx context.Context, eventName string, kvPairs map[string]interface{}) {
	nr, ok := newRelicApplicationFromContext(ctx)
	if ok {
		nr.RecordCustomEvent(eventName, kvPairs)
	}
}

// RecordInstructionBuilt records which builder ran and the size of its output.
// Addresses are intentionally left out of the event.
func RecordInstructionBuilt(ctx context.Context, kind string, dataSize, accountCount int) {
	RecordEvent(ctx, InstructionBuiltEventName, map[string]interface{}{
		"kind":          kind,
		"data_size":     dataSize,
		"account_count": accountCount,
	})
}

// StartWebTransaction begins a New Relic web transaction when an application
// is configured, returning nil otherwise.
func StartWebTransaction(app *newrelic.Application, name string) *newrelic.Transaction {
	if app == nil {
		return nil
	}
	return app.StartTransaction(name)
}
