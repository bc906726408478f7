package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type newRelicContextKey string

// NewRelicContextKey is the context key under which the *newrelic.Application
// is stored.
const NewRelicContextKey = newRelicContextKey("new_relic_application")

// WithNewRelicApplication returns a context that carries app for the helpers
// in this package. A nil app leaves ctx unchanged.
func WithNewRelicApplication(ctx context.Context, app *newrelic.Application) context.Context {
	if app == nil {
		return ctx
	}
	return context.WithValue(ctx, NewRelicContextKey, app)
}

func newRelicApplicationFromContext(ctx context.Context) (*newrelic.Application, bool) {
	nr, ok := ctx.Value(NewRelicContextKey).(*newrelic.Application)
	return nr, ok && nr != nil
}
