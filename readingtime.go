package pubstatic

import (
	"strconv"

	"github.com/eringen/pubstatic/markdown"
)

// ComputeReadingTime estimates how long body takes to read at wpm words per
// minute, rounded up to whole minutes and never less than one. A wpm of zero
// or less means DefaultWordsPerMinute; SiteConfig.WithDefaults applies the
// same default, and SiteConfig.Validate rejects negative speeds.
func ComputeReadingTime(body string, wpm int) ReadingTime {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := markdown.CountWords(body)
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		minutes = 1
	}
	return ReadingTime{
		Minutes: minutes,
		Words:   words,
		Text:    FormatReadingTime(minutes),
	}
}

// FormatReadingTime renders minutes as "1 min read" or "N min read". The
// abbreviation is the same for one and many.
func FormatReadingTime(minutes int) string {
	return strconv.Itoa(minutes) + " min read"
}
