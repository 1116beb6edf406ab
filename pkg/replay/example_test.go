package replay_test

import (
	"fmt"
	"time"

	"github.com/ssargent/osr/pkg/replay"
)

func Example() {
	seed := int32(12345)
	in := &replay.Replay{
		Mode:       replay.ModeTaiko,
		Version:    20230101,
		PlayerName: "player",
		Mods:       replay.ModHidden | replay.ModDoubleTime,
		Events: []replay.ReplayEvent{
			replay.TaikoEvent{TimeDelta: 16, Keys: replay.TaikoLeftDon},
		},
		ReplayID: replay.WideReplayID(99),
		Seed:     &seed,
	}
	in.SetPlayedAt(time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC))

	data, err := replay.Encode(in)
	if err != nil {
		panic(err)
	}

	out, err := replay.Decode(data)
	if err != nil {
		panic(err)
	}
	fmt.Println(out.Mode, out.PlayerName, out.Mods, *out.Seed, out.ReplayID)
	fmt.Println(out.PlayedAt().Format(time.RFC3339))
	fmt.Printf("%+v\n", out.Events[0])
	// Output:
	// taiko player HD,DT 12345 99
	// 2023-01-02T03:04:05Z
	// {TimeDelta:16 Keys:1}
}
