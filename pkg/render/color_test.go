package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/box-annotator/pkg/types"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"#00FF0080", color.NRGBA{0, 255, 0, 128}},
		{"#abc", color.NRGBA{0xaa, 0xbb, 0xcc, 255}},
		{"#abcd", color.NRGBA{0xaa, 0xbb, 0xcc, 0xdd}},
		{"transparent", color.NRGBA{}},
		{" #000000 ", color.NRGBA{0, 0, 0, 255}},
		{"", color.NRGBA{}},
		{"red", color.NRGBA{255, 0, 0, 255}},
		{"White", color.NRGBA{255, 255, 255, 255}},
		{"rgba(255, 0, 0, 0.05)", color.NRGBA{255, 0, 0, 13}},
		{"rgba(255,0,0,0.05)", color.NRGBA{255, 0, 0, 13}},
		{"rgb(1,2,3)", color.NRGBA{1, 2, 3, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"not-a-color", "#12", "#12345", "#gggggg", "rgb(1,2"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrInvalidStyle, in)
	}
}

func TestValidateStyle(t *testing.T) {
	assert.NoError(t, ValidateStyle(types.DefaultStyles()[types.Idle]))
	assert.ErrorIs(t, ValidateStyle(types.Style{StrokeStyle: "#fff", LineWidth: -1}), ErrInvalidStyle)
	assert.ErrorIs(t, ValidateStyle(types.Style{StrokeStyle: "#fff", LineDash: []float64{4, -2}}), ErrInvalidStyle)
	assert.ErrorIs(t, ValidateStyle(types.Style{FillStyle: "bluish"}), ErrInvalidStyle)
}
