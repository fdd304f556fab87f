package tui

import "errors"

// ErrDetached is returned when the user leaves the progress view before the job finishes.
var ErrDetached = errors.New("tui: detached before the job finished")

// ErrStreamClosed is returned when the event stream ends without a terminal event.
var ErrStreamClosed = errors.New("tui: progress stream closed early")
