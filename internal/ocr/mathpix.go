// Package ocr recognizes question text in images via the Mathpix API.
// It is a producer of raw question text; the engine never sees images.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.mathpix.com/v3/text"

// Client calls the Mathpix text recognition API.
type Client struct {
	appID    string
	appKey   string
	endpoint string
	http     *http.Client
}

// NewClient creates a Mathpix client with the given credentials.
func NewClient(appID, appKey string, timeout time.Duration) (*Client, error) {
	if appID == "" || appKey == "" {
		return nil, fmt.Errorf("mathpix credentials are required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		appID:    appID,
		appKey:   appKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

type textRequest struct {
	Src     string   `json:"src"`
	Formats []string `json:"formats"`
}

type textResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// RecognizeImage extracts text from PNG image bytes.
func (c *Client) RecognizeImage(ctx context.Context, image []byte) (string, error) {
	body, err := json.Marshal(textRequest{
		Src:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
		Formats: []string{"text"},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("app_id", c.appID)
	req.Header.Set("app_key", c.appKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("mathpix request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("mathpix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mathpix status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	var out textResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("mathpix response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("mathpix: %s", out.Error)
	}
	return out.Text, nil
}

// CleanQuestionText strips LaTeX delimiters and braces the recognizer
// emits so the text embeds comparably to the PDF-extracted corpus.
func CleanQuestionText(text string) string {
	r := strings.NewReplacer(`\(`, "", `\)`, "", "{", "", "}", "")
	return strings.TrimSpace(r.Replace(text))
}
