// internal/protocol/delay.go
package protocol

import "time"

// SleepDelay blocks with time.Sleep. It is the production pacing source for
// the driver; tests substitute a recording implementation.
type SleepDelay struct{}

func (SleepDelay) Delay(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
