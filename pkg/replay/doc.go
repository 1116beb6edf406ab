// Package replay decodes and encodes .osr replay files.
//
// A replay is a fixed sequence of little-endian header fields followed by an
// LZMA compressed event stream and the online replay id:
//
//	mode u8 | version i32 | beatmap hash | player name | replay hash |
//	300s 100s 50s gekis katus misses (u16 each) | score i32 |
//	max combo u16 | perfect u8 | mods u32 | life bar | timestamp i64 |
//	blob length i32 | blob | replay id (u32 before 20140721, else u64)
//
// Text fields use the marker encoding of package codec. The event stream is
// parsed by package frames and each generic frame is interpreted for the
// replay's game mode, so Replay.Events holds StandardEvent, TaikoEvent,
// CatchEvent or ManiaEvent values, never a mix.
//
// # Usage
//
//	rep, err := replay.Decode(data)
//	if err != nil {
//		if errors.Is(err, codec.ErrTruncated) {
//			// file was cut short
//		}
//		return err
//	}
//	fmt.Println(rep.PlayerName, rep.Mods, rep.PlayedAt())
//
//	out, err := replay.Encode(rep)
//
// The package-level functions use DefaultOptions. Build a Codec with NewCodec
// to pick a compression preset, padding policy, seed placement, output limit
// or logger.
//
// # Round trips
//
// Decoding then encoding preserves every header field, the life bar, the
// events, the seed and any padding frames. The compressed bytes may differ
// from the original file because the original encoder's settings are unknown;
// decoding the output yields an equal Replay.
//
// A Replay built by hand has no Padding. If its first event looks like
// padding to the codec's policy (all zero and followed by input, or parked
// at x=256, y=-500) it comes back in Padding instead of Events, and Encode
// logs a warning. Codecs using frames.KeepAll keep every frame as an event
// and round-trip such replays exactly.
//
// # Thread Safety
//
// Codec values are immutable and safe for concurrent use. Replay values are
// not synchronized.
package replay
