package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

const binaryName = "walletrules"

func main() {
	cmd := newRootCmd()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Debug("command failed")
		_, _ = fmt.Fprintf(os.Stderr, "%s: %s\n", binaryName, err)
		cancel()
		os.Exit(1)
	}
}
