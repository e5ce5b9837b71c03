package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/giantswarm/stdthread/internal/cli"
)

func main() {
	os.Exit(run())
}

// run executes the command tree and maps its error to an exit code: 2 when
// a stress round failed, 1 for any other error.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, cli.ErrStressFailed) {
			return 2
		}
		return 1
	}
	return 0
}
