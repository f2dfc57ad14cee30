package domain

import "time"

// Clock abstracts the current time so date comparisons stay deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
