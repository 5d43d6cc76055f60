package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrOCRNotConfigured is returned when no OCR endpoint is set.
var ErrOCRNotConfigured = errors.New("ocr endpoint is not configured")

type httpPredictor struct {
	url    string
	client *http.Client
}

// NewHTTPPredictor returns a Predictor that posts image bytes to a remote OCR
// service and reads {"text": "..."} back. An empty url yields a predictor that
// always fails with ErrOCRNotConfigured.
func NewHTTPPredictor(url string, timeout time.Duration) Predictor {
	return &httpPredictor{
		url: strings.TrimRight(url, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (p *httpPredictor) Predict(ctx context.Context, path string) (string, error) {
	if p.url == "" {
		return "", ErrOCRNotConfigured
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", imageContentType(path))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	text := gjson.GetBytes(body, "text")
	if !text.Exists() {
		return "", errors.New("ocr response has no text field")
	}
	return text.String(), nil
}

func imageContentType(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
