package replay

import "github.com/ssargent/osr/pkg/frames"

// catchDashBit is the keys bit that marks a dashing catcher
const catchDashBit = 1

// Interpret converts a generic frame into the event variant for mode. It never
// fails; an unknown mode is treated as standard.
func Interpret(mode GameMode, f frames.Frame) ReplayEvent {
	switch mode {
	case ModeTaiko:
		return TaikoEvent{TimeDelta: f.TimeDelta, Keys: TaikoKeys(f.Keys)}
	case ModeCatch:
		return CatchEvent{X: f.X, TimeDelta: f.TimeDelta, Dashing: f.Keys&catchDashBit != 0}
	case ModeMania:
		return ManiaEvent{TimeDelta: f.TimeDelta, Keys: ManiaKeys(f.Keys)}
	default:
		return StandardEvent{X: f.X, Y: f.Y, TimeDelta: f.TimeDelta, Keys: Keys(f.Keys)}
	}
}

// Flatten is the inverse of Interpret. Fields a mode does not carry are
// written as zero.
func Flatten(e ReplayEvent) frames.Frame {
	switch ev := e.(type) {
	case StandardEvent:
		return frames.Frame{TimeDelta: ev.TimeDelta, X: ev.X, Y: ev.Y, Keys: uint32(ev.Keys)}
	case TaikoEvent:
		return frames.Frame{TimeDelta: ev.TimeDelta, Keys: uint32(ev.Keys)}
	case CatchEvent:
		f := frames.Frame{TimeDelta: ev.TimeDelta, X: ev.X}
		if ev.Dashing {
			f.Keys = catchDashBit
		}
		return f
	case ManiaEvent:
		return frames.Frame{TimeDelta: ev.TimeDelta, Keys: uint32(ev.Keys)}
	default:
		return frames.Frame{}
	}
}

// InterpretAll interprets every frame for mode
func InterpretAll(mode GameMode, fs []frames.Frame) []ReplayEvent {
	if len(fs) == 0 {
		return nil
	}
	events := make([]ReplayEvent, len(fs))
	for i, f := range fs {
		events[i] = Interpret(mode, f)
	}
	return events
}

// FlattenAll flattens every event
func FlattenAll(events []ReplayEvent) []frames.Frame {
	if len(events) == 0 {
		return nil
	}
	fs := make([]frames.Frame, len(events))
	for i, e := range events {
		fs[i] = Flatten(e)
	}
	return fs
}
