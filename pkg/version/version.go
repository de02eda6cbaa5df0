// Package version implements waymark's 5-character base36 version codes.
//
// A code is three base36 digits of days since 2020-01-01 followed by two
// base36 digits of the 10-minute slot within the day. All codes are fixed
// width, so lexicographic order equals chronological order of generation
// and discovered migrations sort correctly with a plain string compare.
package version

import (
	"math"
	"time"
)

// Width is the length of a version code.
const Width = dayWidth + slotWidth

const (
	dayWidth  = 3
	slotWidth = 2
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// epoch is day zero for version codes.
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// EncodeBase36 renders n as fixed-width lowercase base36, most significant
// digit first, zero-padded on the left. A value too large for width keeps
// its low-order digits: the result is always exactly width characters.
func EncodeBase36(n uint32, width int) string {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = base36Chars[n%36]
		n /= 36
	}
	return string(buf)
}

// DecodeBase36 parses s as base36, accepting upper or lower case letters.
// The second return is false when s contains a character outside
// [0-9a-zA-Z] or the value overflows 32 bits. An empty string decodes to
// zero.
func DecodeBase36(s string) (uint32, bool) {
	var n uint64
	for i := 0; i < len(s); i++ {
		var digit uint64
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digit = uint64(c - '0')
		case c >= 'a' && c <= 'z':
			digit = uint64(c-'a') + 10
		case c >= 'A' && c <= 'Z':
			digit = uint64(c-'A') + 10
		default:
			return 0, false
		}
		n = n*36 + digit
		if n > math.MaxUint32 {
			return 0, false
		}
	}
	return uint32(n), true
}

// Generate returns the version code for the given time. Two calls within
// the same 10-minute UTC window yield an identical code; the collision
// surfaces as a file-already-exists error at create time, not here.
func Generate(now time.Time) string {
	now = now.UTC()
	days := uint32(now.Sub(epoch) / (24 * time.Hour))
	slot := uint32((now.Hour()*60 + now.Minute()) / 10)
	return EncodeBase36(days, dayWidth) + EncodeBase36(slot, slotWidth)
}

// Parse splits a code into its day and slot components.
func Parse(s string) (days, slot uint32, ok bool) {
	if len(s) != Width {
		return 0, 0, false
	}
	days, ok = DecodeBase36(s[:dayWidth])
	if !ok {
		return 0, 0, false
	}
	slot, ok = DecodeBase36(s[dayWidth:])
	if !ok {
		return 0, 0, false
	}
	return days, slot, true
}

// IsValid reports whether s has the shape of a version code: exactly five
// ASCII letters or digits.
func IsValid(s string) bool {
	if len(s) != Width {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
