package layout

import (
	"fmt"
	"unicode/utf16"
)

// nameHash is the classic "hash*31 + c" string hash over UTF-16 code
// units. The shift wraps at 32 bits while the running sum does not.
func nameHash(name string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(name)) {
		shifted := int64(int32(h) << 5)
		h = int64(c) + shifted - h
	}
	return h
}

// Color derives a muted hsla colour from the event name; the hour varies
// saturation and lightness so adjacent segments stay distinguishable.
func Color(name string, hour int) string {
	h := nameHash(name)
	if h < 0 {
		h = -h
	}
	hue := h % 360
	saturation := 30 + (hour%4)*10
	lightness := 60 + (hour%3)*10
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, 0.8)", hue, saturation, lightness)
}
