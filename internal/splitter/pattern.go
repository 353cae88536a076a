package splitter

import (
	"fmt"
	"regexp"
)

// identifierMatcher compiles its pattern on first use, so a bad pattern
// only surfaces once a page actually needs identifying.
type identifierMatcher struct {
	pattern string
	re      *regexp.Regexp
}

func newIdentifierMatcher(pattern string) *identifierMatcher {
	return &identifierMatcher{pattern: pattern}
}

// identify returns the first capture group of the first match in text,
// or page_{pageNumber} when nothing matches.
func (m *identifierMatcher) identify(text string, pageNumber int) (string, error) {
	if m.re == nil {
		re, err := regexp.Compile(m.pattern)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPattern, err)
		}
		if re.NumSubexp() < 1 {
			return "", fmt.Errorf("%w: %q has no capture group", ErrPattern, m.pattern)
		}
		m.re = re
	}

	match := m.re.FindStringSubmatch(text)
	if match == nil {
		return FallbackIdentifier(pageNumber), nil
	}
	return match[1], nil
}

// FallbackIdentifier is the name used for a page whose text has no match
func FallbackIdentifier(pageNumber int) string {
	return fmt.Sprintf("page_%d", pageNumber)
}
