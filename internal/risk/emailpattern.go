// File: internal/risk/emailpattern.go
package risk

import "strings"

// weakLocalPartVocabulary lists substrings that mark a guessable local part.
var weakLocalPartVocabulary = []string{
	"password", "123", "000", "admin", "user", "test", "guest",
}

const localPartSeparators = "._-"

// AnalyzeLocalPart inspects the local part of an email address and returns a
// non-negative adjustment for the composite score. Long, separator-structured
// addresses earn a small discount; weak vocabulary, digit runs, and
// plus-addressing tags add points. The composite scorer caps the result
// independently; this function only guarantees it is never negative.
func AnalyzeLocalPart(local string) int {
	points := 0
	lower := strings.ToLower(local)

	for _, weak := range weakLocalPartVocabulary {
		if strings.Contains(lower, weak) {
			points += 5
			break
		}
	}

	if hasDigitRun(lower, 3) {
		points += 3
	}

	if len(local) > 12 && strings.ContainsAny(local, localPartSeparators) {
		points -= 2
	}

	if strings.Contains(local, "+") {
		points += 2
	}

	return max(0, points)
}

// hasDigitRun reports whether s contains at least n consecutive digits.
func hasDigitRun(s string, n int) bool {
	run := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
