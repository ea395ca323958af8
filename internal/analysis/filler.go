package analysis

import "regexp"

// fillerPatterns is the fixed disfluency vocabulary. Whole-word matching;
// "um"/"uh" also match elongated forms ("ummm").
var fillerPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{"um", regexp.MustCompile(`(?i)\bum+\b`)},
	{"uh", regexp.MustCompile(`(?i)\buh+\b`)},
	{"like", regexp.MustCompile(`(?i)\blike\b`)},
	{"you know", regexp.MustCompile(`(?i)\byou\s+know\b`)},
	{"basically", regexp.MustCompile(`(?i)\bbasically\b`)},
	{"actually", regexp.MustCompile(`(?i)\bactually\b`)},
	{"so", regexp.MustCompile(`(?i)\bso\b`)},
	{"right", regexp.MustCompile(`(?i)\bright\b`)},
}

// CountFillers tallies disfluency tokens in the transcript. Zero-count
// entries are omitted from the map; the second return value is the sum of
// all counts.
func CountFillers(transcript string) (map[string]int, int) {
	counts := make(map[string]int)
	total := 0
	for _, p := range fillerPatterns {
		n := len(p.re.FindAllStringIndex(transcript, -1))
		if n > 0 {
			counts[p.key] = n
			total += n
		}
	}
	return counts, total
}
