package replay

// ReplayEvent is one input frame interpreted for a game mode. The concrete
// type is one of StandardEvent, TaikoEvent, CatchEvent or ManiaEvent, and
// always matches the replay's Mode.
type ReplayEvent interface {
	// Mode is the game mode the event belongs to
	Mode() GameMode
	// Delta is the milliseconds since the previous event
	Delta() int64

	isReplayEvent()
}

// StandardEvent is a cursor position plus the held mouse and keyboard keys.
type StandardEvent struct {
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	TimeDelta int64   `json:"time_delta"`
	Keys      Keys    `json:"keys"`
}

// TaikoEvent carries only the drum hits; the cursor is unused.
type TaikoEvent struct {
	TimeDelta int64     `json:"time_delta"`
	Keys      TaikoKeys `json:"keys"`
}

// CatchEvent is the catcher position and whether it is dashing.
type CatchEvent struct {
	X         float32 `json:"x"`
	TimeDelta int64   `json:"time_delta"`
	Dashing   bool    `json:"dashing"`
}

// ManiaEvent holds the lane bitmask.
type ManiaEvent struct {
	TimeDelta int64     `json:"time_delta"`
	Keys      ManiaKeys `json:"keys"`
}

func (StandardEvent) Mode() GameMode { return ModeStandard }
func (TaikoEvent) Mode() GameMode    { return ModeTaiko }
func (CatchEvent) Mode() GameMode    { return ModeCatch }
func (ManiaEvent) Mode() GameMode    { return ModeMania }

func (e StandardEvent) Delta() int64 { return e.TimeDelta }
func (e TaikoEvent) Delta() int64    { return e.TimeDelta }
func (e CatchEvent) Delta() int64    { return e.TimeDelta }
func (e ManiaEvent) Delta() int64    { return e.TimeDelta }

func (StandardEvent) isReplayEvent() {}
func (TaikoEvent) isReplayEvent()    {}
func (CatchEvent) isReplayEvent()    {}
func (ManiaEvent) isReplayEvent()    {}
