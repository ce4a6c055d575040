// Package duration turns ISO-8601 video durations (PT1H2M3S) into the clock
// strings shown next to episodes.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
)

// Fallback is returned for input that is empty, malformed, or carries no units.
const Fallback = "0:00"

var isoPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Parts holds the parsed units. HasHours is set when an hour unit appeared.
type Parts struct {
	Hours, Minutes, Seconds int
	HasHours                bool
}

// Parse splits an ISO-8601 time duration into its units.
func Parse(iso string) (Parts, bool) {
	m := isoPattern.FindStringSubmatch(iso)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return Parts{}, false
	}

	var p Parts
	var err error
	if m[1] != "" {
		if p.Hours, err = strconv.Atoi(m[1]); err != nil {
			return Parts{}, false
		}
		p.HasHours = true
	}
	if m[2] != "" {
		if p.Minutes, err = strconv.Atoi(m[2]); err != nil {
			return Parts{}, false
		}
	}
	if m[3] != "" {
		if p.Seconds, err = strconv.Atoi(m[3]); err != nil {
			return Parts{}, false
		}
	}
	return p, true
}

// Format renders an ISO-8601 duration as a clock string: "01:02:03" when an
// hour unit is present, otherwise "M:SS". It never fails; see Fallback.
func Format(iso string) string {
	p, ok := Parse(iso)
	if !ok {
		return Fallback
	}
	if p.HasHours {
		return fmt.Sprintf("%02d:%02d:%02d", p.Hours, p.Minutes, p.Seconds)
	}
	return fmt.Sprintf("%d:%02d", p.Minutes, p.Seconds)
}
