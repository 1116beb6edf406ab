package replay

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ssargent/osr/pkg/codec"
	"github.com/ssargent/osr/pkg/frames"
)

// ParseLifeBar parses the life-bar text, "time|percentage" pairs separated by
// commas. An empty string is an empty timeline.
func ParseLifeBar(s string) ([]LifeBarFrame, error) {
	text := strings.TrimRight(strings.TrimSpace(s), frames.FrameSeparator)
	if text == "" {
		return nil, nil
	}

	tokens := strings.Split(text, frames.FrameSeparator)
	out := make([]LifeBarFrame, 0, len(tokens))
	for i, tok := range tokens {
		f, err := parseLifeBarFrame(tok)
		if err != nil {
			return nil, &codec.FrameError{Kind: codec.ErrMalformedLifeBar, Index: i, Token: tok, Err: err}
		}
		out = append(out, f)
	}
	return out, nil
}

func parseLifeBarFrame(tok string) (LifeBarFrame, error) {
	timeText, pctText, ok := strings.Cut(tok, frames.FieldSeparator)
	if !ok || strings.Contains(pctText, frames.FieldSeparator) {
		return LifeBarFrame{}, errors.New("expected time|percentage")
	}
	t, err := strconv.ParseInt(strings.TrimSpace(timeText), 10, 64)
	if err != nil {
		return LifeBarFrame{}, err
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(pctText), 32)
	if err != nil {
		return LifeBarFrame{}, err
	}
	return LifeBarFrame{Time: t, Percentage: float32(p)}, nil
}

// FormatLifeBar writes each frame followed by a comma. An empty timeline
// formats to "".
func FormatLifeBar(lb []LifeBarFrame) string {
	if len(lb) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range lb {
		sb.WriteString(strconv.FormatInt(f.Time, 10))
		sb.WriteString(frames.FieldSeparator)
		sb.WriteString(frames.FormatFloat(f.Percentage))
		sb.WriteString(frames.FrameSeparator)
	}
	return sb.String()
}
