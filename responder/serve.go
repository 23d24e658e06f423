package responder

import (
	"github.com/pkg/errors"
)

// FrameIO is a duplex channel of raw frames, link prefix included.
type FrameIO interface {
	// Receive blocks until a frame arrives. The slice is only valid until
	// the next call.
	Receive() ([]byte, error)
	Send(frame []byte) error
}

// Serve answers frames from dev one at a time, forever. It only returns on
// an I/O error, which the caller should treat as fatal.
func Serve(dev FrameIO, e *Engine) error {
	for {
		frame, err := dev.Receive()
		if err != nil {
			return errors.Wrap(err, "receiving frame")
		}

		reply, ok := e.Handle(frame)
		if !ok {
			continue
		}

		if err := dev.Send(reply); err != nil {
			return errors.Wrap(err, "sending reply")
		}
	}
}
