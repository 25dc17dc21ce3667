package event

import "errors"

var (
	ErrProducerClosed  = errors.New("producer is closed")
	ErrProjectorClosed = errors.New("projector is closed")
	ErrUnknownEvent    = errors.New("unknown event type")
)
