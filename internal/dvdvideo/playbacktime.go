package dvdvideo

import "fmt"

// invalidFrameRate is the sentinel frameRateTable carries at the two
// reserved/invalid frame-rate codes (00 and 10). Callers that decode a PGC
// or cell playback time must check for it and report a FormatError rather
// than silently treating it as a real rate.
const invalidFrameRate = 1000000

// frameRateTable maps the 2-bit frame-rate field packed into the top bits
// of an IFO time's fourth byte to an actual frame rate. Index 0 and 2 are
// reserved/invalid in practice and must be reported, never silently used.
//
// Grounded on original_source/dvdfolder.py's IFOPlaybackTime frame-rate
// lookup table.
var frameRateTable = [4]float64{invalidFrameRate, 25.0, invalidFrameRate, 29.97}

// PlaybackTime is a BCD-encoded DVD playback duration/timestamp: hours,
// minutes, seconds each packed as BCD, plus a frame count (also BCD) whose
// top two bits select the frame rate.
type PlaybackTime struct {
	Hours, Minutes, Seconds, Frames int
	FrameRate                       float64
}

// parsePlaybackTime decodes a 4-byte IFO time field.
// Grounded on internal/mediainfo/dvd.go:dvdTimeToMilliseconds/dvdBCD.
func parsePlaybackTime(b []byte) PlaybackTime {
	if len(b) < 4 {
		return PlaybackTime{}
	}
	fpsCode := (b[3] >> 6) & 0x03
	return PlaybackTime{
		Hours:     bcdToDecimal(b[0]),
		Minutes:   bcdToDecimal(b[1]),
		Seconds:   bcdToDecimal(b[2]),
		Frames:    bcdToDecimal(b[3] & 0x3F),
		FrameRate: frameRateTable[fpsCode],
	}
}

// Milliseconds returns the time as a millisecond count, rounding the
// fractional frame component per the teacher's (ticks*1000+45000)/90000
// rounding rule (90 kHz PTS clock).
func (t PlaybackTime) Milliseconds() int64 {
	ticks := int64(t.Hours*3600+t.Minutes*60+t.Seconds) * 90000
	switch t.FrameRate {
	case 25.0:
		ticks += int64(t.Frames) * 3600
	case 29.97:
		ticks += int64(t.Frames) * 3000
	}
	return (ticks*1000 + 45000) / 90000
}

// SecondsTotal returns the time as a float64 second count.
func (t PlaybackTime) SecondsTotal() float64 {
	return float64(t.Milliseconds()) / 1000.0
}

// EqualWithin reports whether t and other differ by less than the given
// tolerance in seconds. The original implementation used a 0.04s
// (roughly one NTSC frame) tolerance when comparing a PGC's declared
// playtime against a recomputed one.
func (t PlaybackTime) EqualWithin(other PlaybackTime, tolerance float64) bool {
	diff := t.SecondsTotal() - other.SecondsTotal()
	if diff < 0 {
		diff = -diff
	}
	return diff < tolerance
}

func (t PlaybackTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%02d", t.Hours, t.Minutes, t.Seconds, t.Frames)
}
