package extract

import "testing"

func TestParseText_AnsParenLayout(t *testing.T) {
	text := `Instructions: attempt all questions.
SECTION-A
1. A particle moves with constant velocity. What is its acceleration?
(1) zero (2) constant (3) increasing (4) decreasing
Ans. (1)
2. What is the SI unit of force?
(1) joule (2) newton (3) watt (4) pascal
Ans. (2)`

	records := ParseText(text)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Answer != "1" || records[1].Answer != "2" {
		t.Errorf("answers = %q, %q", records[0].Answer, records[1].Answer)
	}
	if records[0].Question == "" || records[1].Question == "" {
		t.Error("empty question body")
	}
	for i, r := range records {
		if len(r.Question) > 0 && r.Question[0] == ' ' {
			t.Errorf("record %d question not trimmed: %q", i, r.Question)
		}
	}
}

func TestParseText_AnswerColonLayout(t *testing.T) {
	text := `SECTION-A
1. Which planet is closest to the sun?
Answer: 3
2. Which gas is most abundant in air?
Answer: 1`

	records := ParseText(text)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Answer != "3" || records[1].Answer != "1" {
		t.Errorf("answers = %q, %q", records[0].Answer, records[1].Answer)
	}
}

func TestParseText_StripsBeforeSectionMarker(t *testing.T) {
	text := `3. This looks like a question but precedes the marker Ans. (4)
SECTION-A
1. The real first question Ans. (2)`

	records := ParseText(text)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Answer != "2" {
		t.Errorf("answer = %q, want 2", records[0].Answer)
	}
}

func TestParseText_NoMarkerStillParses(t *testing.T) {
	records := ParseText("1. Standalone question Ans. (4)")
	if len(records) != 1 || records[0].Answer != "4" {
		t.Fatalf("records = %+v", records)
	}
}

func TestParseText_FirstMatchingLayoutWins(t *testing.T) {
	// When the paren layout matches, the colon layout is not also applied,
	// so a record is never emitted twice.
	text := `1. Mixed layout question Ans. (2)
2. Colon layout leftover Answer: 3`

	records := ParseText(text)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Answer != "2" {
		t.Errorf("answer = %q", records[0].Answer)
	}
}

func TestParseText_Empty(t *testing.T) {
	if got := ParseText(""); got != nil {
		t.Errorf("empty text should yield no records, got %v", got)
	}
	if got := ParseText("no questions here at all"); got != nil {
		t.Errorf("unstructured text should yield no records, got %v", got)
	}
}
