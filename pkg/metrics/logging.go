package metrics

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// LogFormatter wraps a logrus.Formatter and forwards every entry to New
// Relic with its fields flattened into the message. The stock nrlogrus
// integration only forwards the message itself.
type LogFormatter struct {
	app  *newrelic.Application
	next logrus.Formatter
}

func NewLogFormatter(app *newrelic.Application, next logrus.Formatter) *LogFormatter {
	return &LogFormatter{
		app:  app,
		next: next,
	}
}

func (f *LogFormatter) Format(e *logrus.Entry) ([]byte, error) {
	formatted, err := f.next.Format(e)
	if err != nil {
		return nil, err
	}

	data := newrelic.LogData{
		Timestamp: e.Time.UnixMilli(),
		Severity:  e.Level.String(),
		Message:   forwardedMessage(e),
	}

	buf := bytes.NewBuffer(bytes.TrimRight(formatted, "\n"))

	var txn *newrelic.Transaction
	if e.Context != nil {
		txn = newrelic.FromContext(e.Context)
	}
	if txn != nil {
		txn.RecordLog(data)
		err = newrelic.EnrichLog(buf, newrelic.FromTxn(txn))
	} else {
		f.app.RecordLog(data)
		err = newrelic.EnrichLog(buf, newrelic.FromApp(f.app))
	}
	if err != nil {
		return nil, err
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// forwardedMessage renders e as "message key=value ..." with keys sorted.
func forwardedMessage(e *logrus.Entry) string {
	if len(e.Data) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(e.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	return b.String()
}
