package answer

import "testing"

func TestExtract(t *testing.T) {
	e := NewExtractor(nil)
	tests := []struct {
		name     string
		raw      string
		label    string
		fallback bool
	}{
		{"bare label", "2", "2", false},
		{"label in sentence", "The answer is (3).", "3", false},
		{"label with punctuation", "3.", "3", false},
		{"first of several", "1 or maybe 2", "1", false},
		{"label inside larger number ignored", "Ans: 10", "Ans: 10", true},
		{"no label at all", "no clear option", "no clear option", true},
		{"fallback trims whitespace", "  unsure  ", "unsure", true},
		{"label after explanation", "After computing the integral, option 4", "4", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.raw)
			if got.Label != tt.label {
				t.Errorf("Extract(%q).Label = %q, want %q", tt.raw, got.Label, tt.label)
			}
			if got.Fallback != tt.fallback {
				t.Errorf("Extract(%q).Fallback = %v, want %v", tt.raw, got.Fallback, tt.fallback)
			}
		})
	}
}

func TestExtract_CustomLabels(t *testing.T) {
	e := NewExtractor([]string{"A", "B", "C", "D"})
	got := e.Extract("The correct choice is B.")
	if got.Label != "B" || got.Fallback {
		t.Errorf("got %+v, want label B", got)
	}
	// "A" must not match inside a word.
	got = e.Extract("ABBA")
	if !got.Fallback {
		t.Errorf("substring of a larger token should not match: %+v", got)
	}
}

func TestExtractor_Labels(t *testing.T) {
	e := NewExtractor(nil)
	labels := e.Labels()
	if len(labels) != 4 || labels[0] != "1" {
		t.Errorf("default labels = %v", labels)
	}
	labels[0] = "mutated"
	if e.Labels()[0] != "1" {
		t.Error("Labels should return a copy")
	}
}
