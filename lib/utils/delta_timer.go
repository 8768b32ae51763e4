package utils

import "time"

// DeltaTimer measures the time between consecutive frames. The zero value
// is ready to use; its first Next returns 0.
type DeltaTimer struct {
	last time.Time
	now  func() time.Time
}

func (d *DeltaTimer) Next() time.Duration {
	now := d.clock()
	prev := d.last
	d.last = now
	if prev.IsZero() {
		return 0
	}
	return now.Sub(prev)
}

func (d *DeltaTimer) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}
