package models

import "testing"

func TestAskRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     AskRequest
		wantErr bool
		wantK   int
	}{
		{"defaults k", AskRequest{Question: "q"}, false, DefaultK},
		{"keeps valid k", AskRequest{Question: "q", K: 7}, false, 7},
		{"negative k defaults", AskRequest{Question: "q", K: -2}, false, DefaultK},
		{"caps k", AskRequest{Question: "q", K: 500}, false, MaxK},
		{"empty question", AskRequest{}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.req.K != tt.wantK {
				t.Errorf("k = %d, want %d", tt.req.K, tt.wantK)
			}
		})
	}
}
