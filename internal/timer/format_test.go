package timer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		millis int64
		want   string
	}{
		{"zero", 0, "00:00:00"},
		{"one second", 1000, "00:01:00"},
		{"one hundredth", 10, "00:00:01"},
		{"below one hundredth", 9, "00:00:00"},
		{"twelve minutes thirty four and a half hundredths", 720000 + 34000 + 350, "12:34:35"},
		{"hundredths truncate", 754835, "12:34:83"},
		{"last hundredth of a minute", 59999, "00:59:99"},
		{"one minute", 60000, "01:00:00"},
		{"ninety nine minutes", 99*60000 + 59990, "99:59:99"},
		{"minutes widen past 99", 100 * 60000, "100:00:00"},
		{"negative clamps to zero", -1500, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.millis))
		})
	}
}

func TestFormatShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{2,}:\d{2}:\d{2}$`)

	for ms := int64(0); ms < 3*60*60*1000; ms += 7919 {
		got := Format(ms)
		if !shape.MatchString(got) {
			t.Fatalf("Format(%d) = %q, bad shape", ms, got)
		}
		// Deterministic.
		if again := Format(ms); again != got {
			t.Fatalf("Format(%d) not deterministic: %q vs %q", ms, got, again)
		}
	}
}
