package mytime

import "time"

// ExampleTime is the fixed "now" of tests.
var ExampleTime = time.Date(2023, time.February, 27, 23, 58, 59, 0, time.UTC)

//go:generate mockgen -source=api.go -package mytime -destination nower_mock.go Nower
type Nower interface {
	Now() time.Time
}

// RealNower reports wall-clock time in UTC, as stored in carts, consent records and outbox entries.
type RealNower struct{}

func (n RealNower) Now() time.Time {
	return time.Now().UTC()
}
