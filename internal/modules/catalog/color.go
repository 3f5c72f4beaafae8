package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// HexToRGB converts "#rrggbb" (leading # optional) into "rgb(r, g, b)".
func HexToRGB(hex string) (string, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return "", false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", v>>16&0xff, v>>8&0xff, v&0xff), true
}
