package prompt

import (
	"strings"
	"testing"

	"github.com/hyperjump/kaitou/internal/models"
)

func TestBuild_ExemplarOrder(t *testing.T) {
	b := NewBuilder(nil)
	ctxs := []models.RetrievedContext{
		{Question: "nearest question", Answer: "1", Distance: 0.1},
		{Question: "second question", Answer: "2", Distance: 0.5},
		{Question: "third question", Answer: "3", Distance: 0.9},
	}
	p := b.Build("target question", ctxs)

	first := strings.Index(p.User, "nearest question")
	second := strings.Index(p.User, "second question")
	third := strings.Index(p.User, "third question")
	target := strings.Index(p.User, "target question")
	if first < 0 || second < 0 || third < 0 || target < 0 {
		t.Fatalf("prompt missing content:\n%s", p.User)
	}
	if !(first < second && second < third && third < target) {
		t.Errorf("exemplars out of order: %d %d %d target=%d", first, second, third, target)
	}
}

func TestBuild_Structure(t *testing.T) {
	b := NewBuilder(nil)
	p := b.Build("What is the value of x?", []models.RetrievedContext{
		{Question: "ref q", Answer: "4"},
	})
	if !strings.Contains(p.System, "1, 2, 3, or 4") {
		t.Errorf("system prompt should name the option set: %q", p.System)
	}
	if !strings.Contains(p.User, "Question: ref q\nAnswer: 4\n\n") {
		t.Errorf("exemplar block malformed:\n%s", p.User)
	}
	if !strings.HasSuffix(p.User, "Answer option:") {
		t.Errorf("user prompt should end with the final instruction:\n%s", p.User)
	}
}

func TestBuild_NoContext(t *testing.T) {
	b := NewBuilder(nil)
	p := b.Build("q", nil)
	if !strings.Contains(p.User, "Question: q") {
		t.Errorf("target question missing:\n%s", p.User)
	}
}

func TestBuild_CustomLabels(t *testing.T) {
	b := NewBuilder([]string{"A", "B"})
	p := b.Build("q", nil)
	if !strings.Contains(p.System, "A, or B") {
		t.Errorf("system prompt should use custom labels: %q", p.System)
	}
}

func TestFormatOptionList(t *testing.T) {
	tests := []struct {
		labels []string
		want   string
	}{
		{[]string{"1"}, "1"},
		{[]string{"1", "2"}, "1, or 2"},
		{[]string{"1", "2", "3", "4"}, "1, 2, 3, or 4"},
	}
	for _, tt := range tests {
		if got := formatOptionList(tt.labels); got != tt.want {
			t.Errorf("formatOptionList(%v) = %q, want %q", tt.labels, got, tt.want)
		}
	}
}
