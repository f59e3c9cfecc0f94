package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hyperjump/kaitou/internal/models"
)

// Solution papers prefix the questions with instructions and a section
// marker; everything before it is noise.
const sectionMarker = "SECTION-A"

// qaPatterns match "N. question ... Ans. (x)" and "N. question ... Answer: x"
// layouts. Each pattern captures the question body and the answer.
var qaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)(\d+\.\s*(.*?))\s*Ans\.\s*\((.*?)\)`),
	regexp.MustCompile(`(?s)(\d+\.\s*(.*?))\s*Answer:\s*([^\n]+)`),
}

// ParseText segments the full text of a solution paper into QA records.
// Records keep document order. No deduplication or validation is done here.
func ParseText(fullText string) []models.QARecord {
	if i := strings.Index(fullText, sectionMarker); i >= 0 {
		fullText = fullText[i+len(sectionMarker):]
	}
	var records []models.QARecord
	for _, pat := range qaPatterns {
		for _, m := range pat.FindAllStringSubmatch(fullText, -1) {
			question := strings.TrimSpace(m[2])
			answer := strings.TrimSpace(m[3])
			if question != "" && answer != "" {
				records = append(records, models.QARecord{Question: question, Answer: answer})
			}
		}
		if len(records) > 0 {
			break
		}
	}
	return records
}

// File extracts QA records from a single solution-paper PDF.
func File(path string) ([]models.QARecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text, err := pdfText(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ParseText(text), nil
}

// Dir extracts QA records from every *.pdf in dir, aggregated in file
// name order. Files that yield no records are skipped silently; files
// that cannot be parsed produce an error.
func Dir(dir string) ([]models.QARecord, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	var all []models.QARecord
	for _, p := range paths {
		records, err := File(p)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
