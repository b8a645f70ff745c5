package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		in   string
		days int
	}{
		{"30d", 30},
		{"1w", 7},
		{"4w", 28},
		{"3m", 90},
		{"12m", 360},
		{"1y", 365},
		{"10y", 3650},
		{" 7D ", 7},
		{"0d", 0},
		{"99999d", 99999},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAge(tt.in)
			require.NoError(t, err)
			assert.Equal(t, time.Duration(tt.days)*24*time.Hour, got)
		})
	}
}

func TestParseAgeErrors(t *testing.T) {
	for _, in := range []string{"", "30", "d", "abc", "30x", "-5d", "1.5y", "99999999999y"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAge(in)
			assert.Error(t, err)
		})
	}
}
