package core

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count with binary units (e.g. "1.5 GiB").
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatAge renders how long ago t was, e.g. "3 days ago".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}
