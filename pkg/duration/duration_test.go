package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hours minutes seconds", "PT1H2M3S", "01:02:03"},
		{"seconds only", "PT45S", "0:45"},
		{"minutes only", "PT5M", "5:00"},
		{"minutes and seconds", "PT12M7S", "12:07"},
		{"hours only", "PT2H", "02:00:00"},
		{"hours and seconds", "PT1H9S", "01:00:09"},
		{"long minutes", "PT95M", "95:00"},
		{"no units", "PT", Fallback},
		{"empty", "", Fallback},
		{"days are not supported", "P1DT2H", Fallback},
		{"garbage", "one hour", Fallback},
		{"lower case", "pt5m", Fallback},
		{"trailing junk", "PT5Mx", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}
