// Package answer parses the constrained final answer out of free-text
// model output.
package answer

import (
	"regexp"
	"strings"
)

// Result is an extraction outcome. When Fallback is false, Label is one of
// the extractor's valid option labels. When Fallback is true, no label was
// found and Label carries the trimmed raw text instead; callers must treat
// that as a low-confidence, ambiguous answer.
type Result struct {
	Label    string
	Fallback bool
}

// Extractor finds the first standalone occurrence of a valid option label
// in free text. The completion model is instructed to emit exactly one
// label, but free-text models add words and punctuation anyway.
type Extractor struct {
	labels []string
	re     *regexp.Regexp
}

// NewExtractor creates an extractor for the given labels. Passing nil uses
// the default four option numbers. Matches are whole-token only: a label
// "1" never matches inside "10".
func NewExtractor(labels []string) *Extractor {
	if len(labels) == 0 {
		labels = []string{"1", "2", "3", "4"}
	}
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	re := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	return &Extractor{labels: labels, re: re}
}

// Labels returns the valid option labels.
func (e *Extractor) Labels() []string {
	return append([]string(nil), e.labels...)
}

// Extract scans raw for the first standalone label. When none is found it
// falls back to the trimmed raw text rather than failing: a degraded but
// visible answer is preferred over an opaque error here.
func (e *Extractor) Extract(raw string) Result {
	if m := e.re.FindString(raw); m != "" {
		return Result{Label: m}
	}
	return Result{Label: strings.TrimSpace(raw), Fallback: true}
}
