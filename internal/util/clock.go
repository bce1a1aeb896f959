// Abstraksi waktu untuk memudahkan testing (uptime di health handler)

package util

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock selalu mengembalikan T.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }
