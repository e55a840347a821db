package utils

import (
	"time"

	"github.com/iov-one/custody"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ custody.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx custody.Context, store custody.KVStore, msg custody.Msg, next custody.Handler) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, msg)
	var resLog string
	if res != nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msg.Path(), resLog, err)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx custody.Context, start time.Time, path, msg string, err error) {
	delta := time.Since(start)
	logger := custody.GetLogger(ctx).With("path", path, "duration", delta/time.Microsecond)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	if err != nil {
		logger.With("err", err).Error(msg)
	} else {
		logger.Info(msg)
	}
}
