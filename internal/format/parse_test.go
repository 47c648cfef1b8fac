package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSeconds(t *testing.T) {
	valid := []struct {
		in   string
		want int
	}{
		{"1:30", 90},
		{"0:45", 45},
		{"5:00", 300},
		{"1:00:00", 3600},
		{"1:01:01", 3661},
		{"90", 90},
		{"0", 0},
		{"1m30s", 90},
		{"2h", 7200},
		{" 45 ", 45},
	}
	for _, c := range valid {
		got, err := ParseSeconds(c.in)
		require.NoError(t, err, "input %q", c.in)
		require.Equal(t, c.want, got, "input %q", c.in)
	}

	invalid := []string{
		"", "abc", "-30", "-1m", "1:2:3:4", "1:75", "2:60:00", "500ms", "1.5s", "1:",
	}
	for _, in := range invalid {
		_, err := ParseSeconds(in)
		require.Error(t, err, "input %q", in)
	}
}
