// Package prompt assembles the instruction sent to the completion provider
// from the target question and its retrieved reference questions.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kaitou/internal/models"
)

// Prompt is the two-part instruction for a chat completion model.
type Prompt struct {
	System string
	User   string
}

// Builder produces prompts constraining the model to a closed set of
// answer option labels. Building is a pure transformation; the Builder
// never calls a provider.
type Builder struct {
	labels     []string
	optionList string
}

// NewBuilder creates a builder for the given option labels.
// Passing nil uses the default four option numbers.
func NewBuilder(labels []string) *Builder {
	if len(labels) == 0 {
		labels = []string{"1", "2", "3", "4"}
	}
	return &Builder{labels: labels, optionList: formatOptionList(labels)}
}

// Build assembles the prompt. Exemplars appear in the order given, which
// the retrieval pipeline guarantees is most-similar-first; completion
// models weight order, so this must not be reshuffled.
func (b *Builder) Build(query string, ctxs []models.RetrievedContext) Prompt {
	var user strings.Builder
	user.WriteString("Based on the following reference questions and their correct answers:\n")
	for _, c := range ctxs {
		fmt.Fprintf(&user, "Question: %s\nAnswer: %s\n\n", c.Question, c.Answer)
	}
	fmt.Fprintf(&user,
		"Now, answer the following question by performing all necessary calculations and provide "+
			"only the correct answer option number (%s) as your final output:\n"+
			"Question: %s\n"+
			"Answer option:", b.optionList, query)

	system := fmt.Sprintf(
		"You are a helpful assistant who performs detailed calculations and returns only the "+
			"final answer option number (%s) without any extra text.", b.optionList)

	return Prompt{System: system, User: user.String()}
}

// formatOptionList renders labels as "1, 2, 3, or 4".
func formatOptionList(labels []string) string {
	if len(labels) == 1 {
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + ", or " + labels[len(labels)-1]
}
