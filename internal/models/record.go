// Package models defines core data structures for QA records, queries, and results.
package models

// QARecord is a single question/answer pair from the solved-question corpus.
// Records are immutable once ingested; identity is the record's position
// in the corpus (dense, zero-based), which is also its row in the vector index.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
