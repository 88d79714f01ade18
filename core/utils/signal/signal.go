package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals returns all the signals that are being watched for to shut down the bot.
func ShutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT,
	}
}

func WaitShutdown() os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, ShutdownSignals()...)
	return <-signals
}
