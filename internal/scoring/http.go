package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPScorer posts images to an HTTP inference endpoint as a multipart form
// and decodes its {label, confidence} JSON response. Single attempt, no
// retries: callers resubmit the whole request on failure.
type HTTPScorer struct {
	url    string
	client *http.Client
}

// NewHTTPScorer builds a scorer against the given endpoint URL.
func NewHTTPScorer(url string, timeout time.Duration) *HTTPScorer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPScorer{url: url, client: &http.Client{Timeout: timeout}}
}

// Score uploads the staged image and returns the classification.
func (s *HTTPScorer) Score(ctx context.Context, imagePath string) (Result, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return Result{}, fmt.Errorf("open staged image: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return Result{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Result{}, fmt.Errorf("copy image into form: %w", err)
	}
	if err := form.Close(); err != nil {
		return Result{}, fmt.Errorf("finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call scoring service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("scoring service returned %s", resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode scoring response: %w", err)
	}
	return result, nil
}
