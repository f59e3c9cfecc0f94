package models

// RetrievedContext is one retrieved reference question, the result of joining
// a vector index hit back to its corpus record. Built fresh per query, never stored.
type RetrievedContext struct {
	Question string  `json:"text"`
	Answer   string  `json:"answer"`
	Distance float32 `json:"distance"`
}

// QueryResult is the response for an answered question.
// SupportingQuestions are ordered most-similar-first (ascending distance).
type QueryResult struct {
	PredictedAnswer string  `json:"predicted_answer"`
	Confidence      float64 `json:"confidence"`
	// Fallback is true when no valid option label was found in the model
	// output and PredictedAnswer carries the raw trimmed completion instead.
	// Callers should treat a fallback as a low-confidence, ambiguous result.
	Fallback            bool               `json:"fallback,omitempty"`
	SupportingQuestions []RetrievedContext `json:"supporting_questions"`
}
