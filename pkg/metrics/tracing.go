package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// StartTransaction begins a transaction named name when ctx carries an
// application. The returned context carries the transaction so segments can
// attach to it. The end func closes it and notes err when non-nil.
func StartTransaction(ctx context.Context, name string) (context.Context, func(err error)) {
	app := FromContext(ctx)
	if app == nil {
		return ctx, func(error) {}
	}

	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), func(err error) {
		if err != nil {
			txn.NoticeError(err)
		}
		txn.End()
	}
}

// Segment times one operation inside the transaction of a context. A nil
// Segment is valid and ignores every call.
type Segment struct {
	txn *newrelic.Transaction
	seg *newrelic.Segment
}

// StartSegment opens a segment named "component operation", or returns nil
// when ctx has no transaction.
func StartSegment(ctx context.Context, component, operation string) *Segment {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	return &Segment{
		txn: txn,
		seg: txn.StartSegment(component + " " + operation),
	}
}

func (s *Segment) AddAttribute(key string, value interface{}) {
	if s == nil {
		return
	}
	s.seg.AddAttribute(key, value)
}

// End closes the segment, noting err on the transaction when non-nil.
func (s *Segment) End(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.txn.NoticeError(err)
	}
	s.seg.End()
}
