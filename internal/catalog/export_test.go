package catalog

import "time"

// SetBusyTimeout shortens the lock wait for tests and restores it on cleanup.
func SetBusyTimeout(t interface{ Cleanup(func()) }, d time.Duration) {
	previous := busyTimeout
	busyTimeout = d
	t.Cleanup(func() { busyTimeout = previous })
}
