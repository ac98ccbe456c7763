package track

import (
	"fmt"
	"time"
)

// Sequence keys sort lexicographically ascending in descending chronological
// order: key(t) = maxTicks - ticks(t), zero-padded to 20 digits. A tick is
// 100ns; tick zero is 0001-01-01T00:00:00 UTC. The constants match the key
// scheme of the existing coordinate data, so keys written by this service
// interleave correctly with historical rows.
const (
	// maxTicks is the tick value of 9999-12-31T23:59:59.9999999 UTC.
	maxTicks int64 = 3155378975999999999
	// unixEpochTicks is the tick value of 1970-01-01T00:00:00 UTC. Tick
	// arithmetic goes through this offset because a time.Duration cannot
	// span from year 1 to the present.
	unixEpochTicks int64 = 621355968000000000

	sequenceKeyWidth = 20
)

// ErrTimeOutOfRange reports a timestamp outside the representable key range.
// Keys for such times would break the fixed-width ordering invariant, so they
// are refused outright.
var ErrTimeOutOfRange = fmt.Errorf("timestamp outside sequence key range")

// SequenceKey derives the storage row key for a sample stored at t.
//
// For any t1, t2 in range: SequenceKey(t1) < SequenceKey(t2) lexicographically
// iff t1 is strictly more recent than t2. The result is always exactly 20
// digits; the width can only overflow for times the ceiling check rejects.
func SequenceKey(t time.Time) (string, error) {
	ticks := unixEpochTicks + t.Unix()*ticksPerSecond + int64(t.Nanosecond())/100
	if ticks < 0 || ticks >= maxTicks {
		return "", ErrTimeOutOfRange
	}
	return fmt.Sprintf("%0*d", sequenceKeyWidth, maxTicks-ticks), nil
}

const ticksPerSecond int64 = 10_000_000
