package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"medsumm/internal/model"
)

// ErrURLRequired is returned by NewHTTP when no endpoint is given.
var ErrURLRequired = errors.New("ner url is required")

type httpRecognizer struct {
	url    string
	client *http.Client
}

// NewHTTP returns a Recognizer that calls a remote biomedical NER model.
// The service receives {"text": ...} and answers {"entities": [{text,label,start,end}]}.
func NewHTTP(url string, timeout time.Duration) (Recognizer, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrURLRequired
	}
	return &httpRecognizer{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	Entities []model.Entity `json:"entities"`
}

func (r *httpRecognizer) Extract(ctx context.Context, text string) ([]model.Entity, error) {
	body, err := json.Marshal(extractRequest{Text: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call ner service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ner service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out extractResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode ner response: %w", err)
	}
	return Sanitize(text, out.Entities), nil
}

// Sanitize drops spans whose offsets fall outside text or whose surface text
// does not match text[start:end], then orders the rest by offset.
func Sanitize(text string, entities []model.Entity) []model.Entity {
	runes := []rune(text)
	out := make([]model.Entity, 0, len(entities))
	for _, e := range entities {
		if e.Start < 0 || e.End > len(runes) || e.Start >= e.End {
			continue
		}
		if string(runes[e.Start:e.End]) != e.Text {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
