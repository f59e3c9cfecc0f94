package models

import "fmt"

const (
	// DefaultK is the number of reference questions retrieved when the
	// request does not specify one.
	DefaultK = 3
	// MaxK caps how many reference questions a single request may ask for.
	MaxK = 50
)

// AskRequest is a question-answering request.
type AskRequest struct {
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

// Validate checks the request and normalizes K into [1, MaxK].
// Returns an error if the question is empty.
func (r *AskRequest) Validate() error {
	if r.Question == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if r.K <= 0 {
		r.K = DefaultK
	}
	if r.K > MaxK {
		r.K = MaxK
	}
	return nil
}
