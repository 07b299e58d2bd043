package errors

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestionDistance is the largest edit distance still offered as a
// "did you mean" candidate.
const maxSuggestionDistance = 3

// SuggestConstant suggests the closest recognized label for an unrecognized
// enumerated value. Matching ignores case first, so "stretch" suggests
// "Stretch".
func SuggestConstant(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	for _, v := range valid {
		if strings.EqualFold(v, unknown) {
			return fmt.Sprintf("Did you mean '%s'? Values are case-sensitive", v)
		}
	}

	if best, ok := closest(unknown, valid); ok {
		return fmt.Sprintf("Did you mean '%s'?", best)
	}
	return fmt.Sprintf("Valid values: %s", strings.Join(valid, ", "))
}

// SuggestElement suggests the closest known element name.
func SuggestElement(unknown string, known []string) string {
	if best, ok := closest(unknown, known); ok {
		return fmt.Sprintf("Did you mean <%s>?", best)
	}
	return ""
}

func closest(unknown string, candidates []string) (string, bool) {
	minDistance := maxSuggestionDistance + 1
	var bestMatch string

	for _, c := range candidates {
		dist := levenshtein.Distance(strings.ToLower(unknown), strings.ToLower(c), nil)
		if dist < minDistance {
			minDistance = dist
			bestMatch = c
		}
	}
	return bestMatch, bestMatch != ""
}
