package panel

import "strings"

// DefaultReserved are substrings marking virtual or loopback devices that
// are hidden from the selection lists.
var DefaultReserved = []string{"CABLE", "Voicemeeter"}

// DefaultCableMatch identifies the virtual cable's capture side.
const DefaultCableMatch = "CABLE Output"

// FilterDevices returns the names that are non-empty and contain none of the
// reserved substrings, in source order. names is not modified.
func FilterDevices(names, reserved []string) []string {
	out := make([]string, 0, len(names))
next:
	for _, name := range names {
		if name == "" {
			continue
		}
		for _, r := range reserved {
			if r != "" && strings.Contains(name, r) {
				continue next
			}
		}
		out = append(out, name)
	}
	return out
}

// FindCable returns the first name containing match.
func FindCable(names []string, match string) (string, bool) {
	if match == "" {
		return "", false
	}
	for _, name := range names {
		if strings.Contains(name, match) {
			return name, true
		}
	}
	return "", false
}
