package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/osr/pkg/api"
	"github.com/ssargent/osr/pkg/replay"
)

// outputJSON writes v as indented JSON
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputReplay displays a decoded replay
func outputReplay(w io.Writer, rep *replay.Replay, asJSON, withEvents bool) error {
	if asJSON {
		resp := api.DecodeResponse{Summary: rep.Summarize(), LifeBar: rep.LifeBar}
		if withEvents {
			resp.Events = rep.Events
			resp.Padding = rep.Padding
		}
		return outputJSON(w, resp)
	}

	if err := outputSummaryTable(w, rep.Summarize()); err != nil {
		return err
	}
	if withEvents {
		fmt.Fprintln(w)
		return outputEventsTable(w, rep.Events)
	}
	return nil
}

// outputSummaryTable displays a replay summary in table format
func outputSummaryTable(out io.Writer, s replay.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Player:\t%s\n", s.PlayerName)
	fmt.Fprintf(w, "Mode:\t%s\n", s.Mode)
	fmt.Fprintf(w, "Version:\t%d\n", s.Version)
	fmt.Fprintf(w, "Beatmap:\t%s\n", s.BeatmapHash)
	if s.ReplayHash != "" {
		fmt.Fprintf(w, "Replay hash:\t%s\n", s.ReplayHash)
	}
	fmt.Fprintf(w, "Played:\t%s\n", s.PlayedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Score:\t%d\n", s.Score)
	fmt.Fprintf(w, "Max combo:\t%d\n", s.MaxCombo)
	fmt.Fprintf(w, "Perfect:\t%t\n", s.Perfect)
	fmt.Fprintf(w, "Mods:\t%s\n", s.ModNames)
	fmt.Fprintf(w, "Hits:\t300:%d 100:%d 50:%d geki:%d katu:%d miss:%d\n",
		s.Count300, s.Count100, s.Count50, s.CountGeki, s.CountKatu, s.CountMiss)

	width := "32-bit"
	if s.WideID {
		width = "64-bit"
	}
	fmt.Fprintf(w, "Replay ID:\t%s (%s)\n", s.ReplayID, width)
	if s.Seed != nil {
		fmt.Fprintf(w, "Seed:\t%d\n", *s.Seed)
	}
	fmt.Fprintf(w, "Events:\t%d (%d padding)\n", s.Events, s.Padding)
	fmt.Fprintf(w, "Life bar:\t%d frames\n", s.LifeBar)
	fmt.Fprintf(w, "Duration:\t%s\n", s.Duration)

	return w.Flush()
}

// outputEventsTable displays events with the columns their mode carries
func outputEventsTable(out io.Writer, events []replay.ReplayEvent) error {
	if len(events) == 0 {
		fmt.Fprintln(out, "No events")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	switch events[0].(type) {
	case replay.TaikoEvent:
		fmt.Fprintln(w, "#\tDELTA\tKEYS")
	case replay.CatchEvent:
		fmt.Fprintln(w, "#\tDELTA\tX\tDASH")
	case replay.ManiaEvent:
		fmt.Fprintln(w, "#\tDELTA\tLANES")
	default:
		fmt.Fprintln(w, "#\tDELTA\tX\tY\tKEYS")
	}

	for i, e := range events {
		switch ev := e.(type) {
		case replay.StandardEvent:
			fmt.Fprintf(w, "%d\t%d\t%g\t%g\t%d\n", i, ev.TimeDelta, ev.X, ev.Y, ev.Keys)
		case replay.TaikoEvent:
			fmt.Fprintf(w, "%d\t%d\t%d\n", i, ev.TimeDelta, ev.Keys)
		case replay.CatchEvent:
			fmt.Fprintf(w, "%d\t%d\t%g\t%t\n", i, ev.TimeDelta, ev.X, ev.Dashing)
		case replay.ManiaEvent:
			fmt.Fprintf(w, "%d\t%d\t%s\n", i, ev.TimeDelta, formatLanes(ev.Keys))
		}
	}

	return w.Flush()
}

func formatLanes(k replay.ManiaKeys) string {
	lanes := k.Lanes()
	if len(lanes) == 0 {
		return "-"
	}
	parts := make([]string, len(lanes))
	for i, l := range lanes {
		parts[i] = fmt.Sprint(l + 1)
	}
	return strings.Join(parts, ",")
}

// outputEventData displays API event data
func outputEventData(w io.Writer, data *replay.EventData, asJSON bool) error {
	if asJSON {
		return outputJSON(w, data)
	}
	if data.Seed != nil {
		fmt.Fprintf(w, "Seed: %d\n", *data.Seed)
	}
	if len(data.Padding) > 0 {
		fmt.Fprintf(w, "Padding frames: %d\n", len(data.Padding))
	}
	return outputEventsTable(w, data.Events)
}

// outputIDs displays archived replay ids with their creation time
func outputIDs(out io.Writer, ids []ksuid.KSUID, asJSON bool) error {
	if asJSON {
		strs := make([]string, len(ids))
		for i, id := range ids {
			strs[i] = id.String()
		}
		return outputJSON(out, api.ListResponse{IDs: strs, Count: len(ids)})
	}

	if len(ids) == 0 {
		fmt.Fprintln(out, "No replays found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARCHIVED")
	for _, id := range ids {
		fmt.Fprintf(w, "%s\t%s\n", id, id.Time().UTC().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
