// Package metrics reports events, timings and traces to New Relic when an
// application is attached to the context. Without one every call is a no-op.
package metrics

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type applicationKey struct{}

// NewContext returns a copy of ctx that reports to app.
func NewContext(ctx context.Context, app *newrelic.Application) context.Context {
	return context.WithValue(ctx, applicationKey{}, app)
}

// FromContext returns the application attached by NewContext, if any.
func FromContext(ctx context.Context) *newrelic.Application {
	app, _ := ctx.Value(applicationKey{}).(*newrelic.Application)
	return app
}

// RecordEvent records a custom event with the given attributes.
func RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	if app := FromContext(ctx); app != nil {
		app.RecordCustomEvent(name, attributes)
	}
}

// RecordDuration records d as a custom metric in milliseconds.
func RecordDuration(ctx context.Context, name string, d time.Duration) {
	if app := FromContext(ctx); app != nil {
		app.RecordCustomMetric(name, float64(d)/float64(time.Millisecond))
	}
}
