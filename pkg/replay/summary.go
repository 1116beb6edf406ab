package replay

import "time"

// Summary is the header of a replay plus event statistics, without the
// events themselves.
type Summary struct {
	Mode        GameMode  `json:"mode"`
	Version     int32     `json:"version"`
	BeatmapHash string    `json:"beatmap_hash"`
	PlayerName  string    `json:"player_name"`
	ReplayHash  string    `json:"replay_hash"`
	Count300    uint16    `json:"count_300"`
	Count100    uint16    `json:"count_100"`
	Count50     uint16    `json:"count_50"`
	CountGeki   uint16    `json:"count_geki"`
	CountKatu   uint16    `json:"count_katu"`
	CountMiss   uint16    `json:"count_miss"`
	Score       int32     `json:"score"`
	MaxCombo    uint16    `json:"max_combo"`
	Perfect     bool      `json:"perfect"`
	Mods        Mods      `json:"mods"`
	ModNames    string    `json:"mod_names"`
	PlayedAt    time.Time `json:"played_at"`
	ReplayID    ReplayID  `json:"replay_id"`
	WideID      bool      `json:"wide_id"`
	Seed        *int32    `json:"seed,omitempty"`
	Events      int       `json:"events"`
	Padding     int       `json:"padding"`
	LifeBar     int       `json:"life_bar_frames"`
	// Duration is the sum of all positive event deltas
	Duration time.Duration `json:"duration"`
}

// Summarize builds the summary of r
func (r *Replay) Summarize() Summary {
	var total int64
	for _, e := range r.Events {
		if d := e.Delta(); d > 0 {
			total += d
		}
	}
	return Summary{
		Mode:        r.Mode,
		Version:     r.Version,
		BeatmapHash: r.BeatmapHash,
		PlayerName:  r.PlayerName,
		ReplayHash:  r.ReplayHash,
		Count300:    r.Count300,
		Count100:    r.Count100,
		Count50:     r.Count50,
		CountGeki:   r.CountGeki,
		CountKatu:   r.CountKatu,
		CountMiss:   r.CountMiss,
		Score:       r.Score,
		MaxCombo:    r.MaxCombo,
		Perfect:     r.Perfect,
		Mods:        r.Mods,
		ModNames:    r.Mods.String(),
		PlayedAt:    r.PlayedAt(),
		ReplayID:    r.ReplayID,
		WideID:      r.ReplayID.Wide(),
		Seed:        r.Seed,
		Events:      len(r.Events),
		Padding:     len(r.Padding),
		LifeBar:     len(r.LifeBar),
		Duration:    time.Duration(total) * time.Millisecond,
	}
}
