package parser

import (
	"regexp"
	"strconv"
	"time"
)

// Log lines open with "M/D/YY H:MM:SSa " or "...p " in 12-hour time.
var timestampRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}) (\d{1,2}):(\d{2}):(\d{2})([ap]) `)

// SplitTimestamp peels the leading timestamp off a log line, returning
// the parse time and the message that follows. Lines without a
// timestamp (continuation lines, client banners) return ok=false with
// the whole line as the message.
func SplitTimestamp(line string) (time.Time, string, bool) {
	m := timestampRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, line, false
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	// 12a is midnight; 12p stays noon.
	if m[7] == "a" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	ts := time.Date(2000+year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return ts, line[len(m[0]):], true
}

// FormatTimestamp renders a timestamp the way the store expects,
// sortable as text.
func FormatTimestamp(ts time.Time) string {
	return ts.Format("2006-01-02 15:04:05")
}
