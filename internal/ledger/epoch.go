package ledger

import "time"

// rippleEpochOffset is the unix timestamp of the ledger's epoch (2000-01-01T00:00:00Z)
const rippleEpochOffset int64 = 946684800

// RippleTime converts a wall-clock instant to ripple-epoch seconds
func RippleTime(t time.Time) int64 {
	return t.Unix() - rippleEpochOffset
}

// FromRippleTime converts ripple-epoch seconds to a wall-clock instant
func FromRippleTime(seconds int64) time.Time {
	return time.Unix(seconds+rippleEpochOffset, 0).UTC()
}
