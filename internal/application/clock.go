package application

import "time"

// Clock abstracts time.Now so services can be tested with a fixed timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default wall-clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
