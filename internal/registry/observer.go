package registry

import "time"

// Observer receives registry events, e.g. for metrics. Calls happen on the
// goroutine that triggered them. Defined runs while the Environment holds its
// write lock, so an observer must not call back into the Environment.
type Observer interface {
	Defined(r *Record, aliased bool)
	Loaded(r *Record, elapsed time.Duration, err error)
	Unresolved(err *NotFoundError)
}

type nopObserver struct{}

func (nopObserver) Defined(*Record, bool)                {}
func (nopObserver) Loaded(*Record, time.Duration, error) {}
func (nopObserver) Unresolved(*NotFoundError)            {}
