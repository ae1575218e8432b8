package dialogue

import (
	"regexp"
	"strconv"
	"strings"
)

var hourPattern = regexp.MustCompile(`\b(6|7|8|9|10|11|12|18|19|20|21|22|23|0|00)(?:\s*(?:pm|am|o'?clock))?\b`)

var halfHours = []struct {
	patterns []string
	key      string
	whole    string
}{
	{[]string{"8:30", "eight thirty", "half past eight"}, "20:30", "20:00"},
	{[]string{"8:45", "eight forty", "quarter to nine"}, "20:45", "20:00"},
}

// hourCandidates returns timeline keys for the time mentioned in text, most
// specific first. Hours are read on the evening clock: 6 and 18 are both
// 18:00, 12 and 0 are midnight.
func hourCandidates(text string) []string {
	text = strings.ToLower(text)

	for _, h := range halfHours {
		for _, p := range h.patterns {
			if strings.Contains(text, p) {
				return []string{h.key, h.whole}
			}
		}
	}

	if m := hourPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return []string{eveningHour(n)}
		}
	}

	switch {
	case strings.Contains(text, "midnight"):
		return []string{"00:00"}
	case strings.Contains(text, "earlier"):
		return []string{"18:00"}
	case strings.Contains(text, "later"):
		return []string{"22:00"}
	}

	return nil
}

func eveningHour(n int) string {
	switch {
	case n == 0 || n == 12:
		return "00:00"
	case n < 12:
		n += 12
	}
	return strconv.Itoa(n) + ":00"
}

// lookupTimeline returns the first candidate hour the timeline covers.
func lookupTimeline(timeline map[string]string, candidates []string) (string, string, bool) {
	for _, hour := range candidates {
		if entry, ok := timeline[hour]; ok {
			return hour, entry, true
		}
	}
	return "", "", false
}
