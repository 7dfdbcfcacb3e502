package voicemeeter

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Parameter scripts are what VBVMR_SetParameters accepts, e.g.
//
//	Strip[1].B1=1;
//	Bus[0].device.wdm="Speakers (Realtek)";

func stripParam(strip int, field string) string {
	return fmt.Sprintf("Strip[%d].%s", strip, field)
}

func busParam(bus int, field string) string {
	return fmt.Sprintf("Bus[%d].%s", bus, field)
}

func boolScript(param string, on bool) string {
	v := 0
	if on {
		v = 1
	}
	return fmt.Sprintf("%s=%d;", param, v)
}

// stringScript quotes value for a parameter script. Voicemeeter has no escape
// sequence for double quotes, so they are dropped.
func stringScript(param, value string) string {
	value = strings.ReplaceAll(value, `"`, "")
	return fmt.Sprintf("%s=\"%s\";", param, value)
}

// encodeANSI converts s to a NUL-terminated Windows-1252 buffer. Characters
// outside the code page become '?'.
func encodeANSI(s string) []byte {
	out := make([]byte, 0, len(s)+1)
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return append(out, 0)
}

// decodeANSI reads a NUL-terminated Windows-1252 buffer into a Go string.
func decodeANSI(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(buf)
	if err != nil {
		return string(buf)
	}
	return string(s)
}
