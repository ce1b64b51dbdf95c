// Package colorconv converts between Lottie's normalized RGB color
// representation and human-editable hex strings.
package colorconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGBA is a color with normalized components in [0,1], in R,G,B,A order.
type RGBA [4]float64

// Default is the fallback color returned for unparseable hex input: opaque
// black.
var Default = RGBA{0, 0, 0, 1}

// ToHex formats the RGB channels of c as a lowercase 6-digit hex string with
// a leading "#". Each channel is rounded to the nearest 1/255 step; the alpha
// channel is dropped.
func ToHex(c RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c[0]), channelByte(c[1]), channelByte(c[2]))
}

// FromHex parses a 6-digit hex color, with or without a leading "#",
// case-insensitively. Alpha is always 1.0. Any malformed input (wrong
// length, invalid digits) yields Default rather than an error; the solid
// layer format carries hex-only colors, so a soft fallback keeps a bad value
// from taking down an edit.
func FromHex(s string) RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Default
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Default
	}
	return RGBA{
		float64(n>>16&0xff) / 255,
		float64(n>>8&0xff) / 255,
		float64(n&0xff) / 255,
		1,
	}
}

// channelByte quantizes a normalized channel to a byte. Out-of-range values
// clamp through rounding rather than being rejected.
func channelByte(v float64) uint8 {
	n := math.Round(v * 255)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n)
}
