package replay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osr/pkg/codec"
)

func TestParseLifeBar(t *testing.T) {
	lb, err := ParseLifeBar("1000|1.0,2000|0.97,")
	require.NoError(t, err)
	assert.Equal(t, []LifeBarFrame{
		{Time: 1000, Percentage: 1},
		{Time: 2000, Percentage: 0.97},
	}, lb)
}

func TestParseLifeBar_NoTrailingComma(t *testing.T) {
	lb, err := ParseLifeBar("1000|1,2000|0.5")
	require.NoError(t, err)
	assert.Len(t, lb, 2)
}

func TestParseLifeBar_Empty(t *testing.T) {
	for _, s := range []string{"", ",", "  "} {
		lb, err := ParseLifeBar(s)
		require.NoError(t, err)
		assert.Empty(t, lb)
	}
}

func TestParseLifeBar_Malformed(t *testing.T) {
	tests := []struct {
		in    string
		index int
	}{
		{"1000", 0},
		{"1000|1,x|0.5,", 1},
		{"1000|1,2000|0.5,3000|y", 2},
		{"1000|1|2,", 0},
		{"1000|1,,2000|1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseLifeBar(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, codec.ErrMalformedLifeBar)

			var fe *codec.FrameError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.index, fe.Index)
		})
	}
}

func TestFormatLifeBar(t *testing.T) {
	assert.Equal(t, "1000|1,2000|0.97,", FormatLifeBar([]LifeBarFrame{{1000, 1}, {2000, 0.97}}))
	assert.Equal(t, "", FormatLifeBar(nil))
}

func TestLifeBar_RoundTrip(t *testing.T) {
	in := []LifeBarFrame{{0, 1}, {1523, 0.8312}, {99000, 0}}
	out, err := ParseLifeBar(FormatLifeBar(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
