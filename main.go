package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := New().ExecuteContext(ctx); err != nil {
		// module mode already reported the failure on stdout
		if !errors.Is(err, ErrModuleFailed) {
			fmt.Fprintf(os.Stderr, "Fail: %s\n", err)
		}
		stop()
		os.Exit(1)
	}
}
