package ordering

import (
	"github.com/datatrails/go-datatrails-common/logger"
)

// RoundOptions collects the settings applied by Option values passed to
// NewRoundTracker.
type RoundOptions struct {
	Log   logger.Logger
	Round uint64
}

// Option is a generic option type. Implementations type assert to their
// options record and ignore options meant for something else.
type Option func(any)

// WithLogger sets the logger used for round transitions and peer merges.
func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(*RoundOptions); ok {
			o.Log = log
		}
	}
}

// WithRound sets the number of the first round tracked.
func WithRound(round uint64) Option {
	return func(opts any) {
		if o, ok := opts.(*RoundOptions); ok {
			o.Round = round
		}
	}
}
