package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/kaitou/internal/models"
)

func sampleResult() *models.QueryResult {
	return &models.QueryResult{
		PredictedAnswer: "3",
		Confidence:      0.95,
		SupportingQuestions: []models.RetrievedContext{
			{Question: "closest question", Answer: "3", Distance: 0.12},
			{Question: "second closest", Answer: "1", Distance: 0.48},
		},
	}
}

func TestWriteQueryResult_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQueryResult(&buf, sampleResult(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Predicted answer: option 3 (confidence 0.95)") {
		t.Errorf("missing answer line:\n%s", out)
	}
	if !strings.Contains(out, "Supporting questions (2, most similar first):") {
		t.Errorf("missing supporting header:\n%s", out)
	}
	if !strings.Contains(out, "distance 0.1200") {
		t.Errorf("missing distance:\n%s", out)
	}
	if strings.Index(out, "closest question") > strings.Index(out, "second closest") {
		t.Error("supporting questions out of order")
	}
}

func TestWriteQueryResult_Fallback(t *testing.T) {
	var buf bytes.Buffer
	result := &models.QueryResult{PredictedAnswer: "cannot determine", Fallback: true}
	if err := WriteQueryResult(&buf, result, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "unparsed model output") {
		t.Errorf("fallback output should be marked:\n%s", buf.String())
	}
}

func TestWriteQueryResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQueryResult(&buf, sampleResult(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.QueryResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.PredictedAnswer != "3" || len(decoded.SupportingQuestions) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestBuildQuestion(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"what", "is", "force?"}, "what is force?"},
		{[]string{"single"}, "single"},
		{[]string{"  padded  "}, "padded"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := BuildQuestion(tt.args); got != tt.want {
			t.Errorf("BuildQuestion(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 300); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	long := strings.Repeat("x", 10)
	if got := truncate(long, 4); got != "xxxx..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate(long, 0); got != long {
		t.Errorf("maxLen 0 should disable truncation, got %q", got)
	}
}
