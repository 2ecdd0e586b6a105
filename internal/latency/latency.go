// Package latency simulates network round-trips in front of in-process operations.
package latency

import "time"

// Profile holds the artificial delay applied before each boundary operation.
type Profile struct {
	Login    time.Duration
	Register time.Duration
	List     time.Duration
	Upload   time.Duration
	Delete   time.Duration
	Download time.Duration
}

// Default mirrors the delays of the reference mock API.
func Default() Profile {
	return Profile{
		Login:    1000 * time.Millisecond,
		Register: 1000 * time.Millisecond,
		List:     500 * time.Millisecond,
		Upload:   2000 * time.Millisecond,
		Delete:   500 * time.Millisecond,
		Download: 500 * time.Millisecond,
	}
}

// Zero returns a profile with no delays.
func Zero() Profile {
	return Profile{}
}

// Pause blocks for d. A non-positive d returns immediately.
func Pause(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}
