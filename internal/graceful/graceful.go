package graceful

import (
	"os"
	"os/signal"
	"syscall"
)

// ShutdownChan returns a channel that receives SIGINT and SIGTERM, so
// main loops can cancel their root context on exit signals.
func ShutdownChan() chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}
