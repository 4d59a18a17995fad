package subtitle

import "strings"

// PeriodSpaceSegmenter splits on the literal ". " and drops empty clauses.
// The separator's period is consumed, so only the last clause keeps one.
type PeriodSpaceSegmenter struct{}

func (PeriodSpaceSegmenter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var clauses []string
	for _, c := range strings.Split(text, ". ") {
		if c = strings.TrimSpace(c); c != "" {
			clauses = append(clauses, c)
		}
	}
	return clauses
}
