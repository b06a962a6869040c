package aiverify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Result is the verifier's judgement on one upload. When Fallback is set the
// service could not be reached and the values are the neutral stand-in, not
// a real model output.
type Result struct {
	ModelVersion string   `json:"model_version"`
	ScoreHuman   float64  `json:"score_human"`
	Verdict      string   `json:"verdict"`
	Explanations []string `json:"explanations"`

	Fallback bool `json:"-"`
}

// fallback is returned whenever the verifier cannot produce a real answer.
// Uploads must keep working with the AI service down, so the neutral verdict
// parks the artwork for human review instead of blocking or passing it.
func fallback() Result {
	return Result{
		ModelVersion: "unavailable",
		ScoreHuman:   0.5,
		Verdict:      "review",
		Explanations: []string{"AI service not reachable"},
		Fallback:     true,
	}
}

// Client talks to the external authenticity verifier over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a reusable HTTP client. A non-positive timeout falls
// back to 15 seconds so a stalled verifier can never hold an upload open
// indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Verify submits the image bytes and returns the verifier's judgement. It
// never returns an error: any failure, from connection refused to a garbled
// response body, degrades to the neutral fallback Result.
func (c *Client) Verify(ctx context.Context, filename string, data []byte) Result {
	res, err := c.verify(ctx, filename, data)
	if err != nil {
		log.Printf("⚠️ Verification service unavailable, using fallback verdict: %v", err)
		return fallback()
	}
	return res
}

func (c *Client) verify(ctx context.Context, filename string, data []byte) (Result, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Result{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return Result{}, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", body)
	if err != nil {
		return Result{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if out.Verdict == "" {
		return Result{}, fmt.Errorf("malformed response: missing verdict")
	}
	return out, nil
}
