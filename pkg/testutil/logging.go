package testutil

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Packages importing testutil log at trace level so every log statement
// runs, but output is discarded unless TEST_LOG_LEVEL names a logrus level.
func init() {
	logrus.SetLevel(logrus.TraceLevel)

	level, err := logrus.ParseLevel(os.Getenv("TEST_LOG_LEVEL"))
	if err != nil || os.Getenv("TEST_LOG_LEVEL") == "" {
		logrus.SetOutput(io.Discard)
		return
	}
	logrus.SetLevel(level)
}
