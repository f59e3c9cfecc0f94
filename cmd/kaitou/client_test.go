package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/kaitou/internal/models"
)

func TestAskViaHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ask" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req models.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Question != "what is inertia?" || req.K != 2 {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(models.QueryResult{
			PredictedAnswer: "2",
			Confidence:      0.95,
		})
	}))
	defer ts.Close()

	result, err := askViaHTTP(ts.URL, &models.AskRequest{Question: "what is inertia?", K: 2})
	if err != nil {
		t.Fatal(err)
	}
	if result.PredictedAnswer != "2" || result.Confidence != 0.95 {
		t.Errorf("result = %+v", result)
	}
}

func TestAskViaHTTP_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "No data available. Please load the question corpus first.",
		})
	}))
	defer ts.Close()

	_, err := askViaHTTP(ts.URL, &models.AskRequest{Question: "q", K: 1})
	if err == nil {
		t.Fatal("want error on 404")
	}
	if !strings.Contains(err.Error(), "No data available") {
		t.Errorf("error should carry the server message, got %v", err)
	}
}

func TestAskViaHTTP_NonJSONFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := askViaHTTP(ts.URL, &models.AskRequest{Question: "q", K: 1})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("want status error, got %v", err)
	}
}

func TestAskViaHTTP_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	if _, err := askViaHTTP(ts.URL, &models.AskRequest{Question: "q", K: 1}); err == nil {
		t.Error("want connection error")
	}
}
