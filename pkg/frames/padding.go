package frames

// PaddingPolicy returns how many leading frames of a stream are synthetic
// padding. The seed frame has already been removed when the policy runs.
//
// Whether a leading frame is padding cannot be decided from the bytes alone:
// an all-zero first frame is both the conventional skip marker and a valid
// (if unusual) first input. Policies make that choice explicit.
type PaddingPolicy func(frames []Frame) int

// Lazer clients start streams with frames parked at this position.
const (
	lazerSkipX float32 = 256
	lazerSkipY float32 = -500
)

// KeepAll treats no frame as padding.
func KeepAll([]Frame) int {
	return 0
}

// ZeroPadding drops a single all-zero first frame, but only when the frame
// after it carries data.
func ZeroPadding(frames []Frame) int {
	if len(frames) >= 2 && frames[0].IsZero() && !frames[1].IsZero() {
		return 1
	}
	return 0
}

// LazerPadding drops up to two leading frames at x=256, y=-500.
func LazerPadding(frames []Frame) int {
	n := 0
	for n < len(frames) && n < 2 && frames[n].X == lazerSkipX && frames[n].Y == lazerSkipY {
		n++
	}
	return n
}

// Combine applies policies in order, each to the frames left by the previous.
func Combine(policies ...PaddingPolicy) PaddingPolicy {
	return func(frames []Frame) int {
		total := 0
		for _, p := range policies {
			if p == nil {
				continue
			}
			n := p(frames[total:])
			if n <= 0 {
				continue
			}
			total += n
			if total >= len(frames) {
				return len(frames)
			}
		}
		return total
	}
}

// FirstOf applies policies in order and returns the count of the first one
// that finds padding. Later policies never see frames after that padding.
func FirstOf(policies ...PaddingPolicy) PaddingPolicy {
	return func(frames []Frame) int {
		for _, p := range policies {
			if p == nil {
				continue
			}
			if n := p(frames); n > 0 {
				return min(n, len(frames))
			}
		}
		return 0
	}
}

// DefaultPadding removes leading lazer skip frames or, when there are none, a
// single zero frame at the very start of the stream. A zero frame that follows
// lazer skip frames is real input.
var DefaultPadding = FirstOf(LazerPadding, ZeroPadding)
