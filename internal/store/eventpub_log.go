package store

import "github.com/rs/zerolog"

// LogPublisher writes every dispatch to a zerolog logger. With withState set
// the post-dispatch state is included, which is what the dev-tools mode uses.
type LogPublisher struct {
	log       zerolog.Logger
	withState bool
}

// NewLogPublisher returns a publisher that logs dispatches at debug level.
func NewLogPublisher(l zerolog.Logger, withState bool) *LogPublisher {
	return &LogPublisher{log: l, withState: withState}
}

func (p *LogPublisher) Publish(e Event) {
	z := p.log.Debug().
		Str("event", e.Name).
		Str("action", e.Action).
		Bool("changed", e.Changed).
		Dur("dur", e.Duration)
	for k, v := range e.Fields {
		z = z.Interface(k, v)
	}
	if p.withState {
		z = z.Interface("state", e.State)
	}
	z.Msg("store")
}
