package scoregen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// client wraps the small HTTP surface the generator needs.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(cfg *Config) *client {
	return &client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}
}

// submitResult classifies one submission outcome.
type submitResult int

const (
	submitAccepted submitResult = iota
	submitDuplicate
	submitFailed
)

func (c *client) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// submit posts one score and classifies the outcome. Duplicate rejections
// share the 400 status with validation errors, so the message text
// disambiguates.
func (c *client) submit(ctx context.Context, sub Submission) (submitResult, string, error) {
	var body statusResponse
	status, err := c.postJSON(ctx, "/api/submit_stats", sub, &body)
	if err != nil {
		return submitFailed, "", err
	}
	switch {
	case status == http.StatusOK:
		return submitAccepted, body.Message, nil
	case status == http.StatusBadRequest && isDuplicateMessage(body.Message):
		return submitDuplicate, body.Message, nil
	default:
		return submitFailed, body.Message, nil
	}
}

// rankingInfo fetches the submitting profile's aggregates.
func (c *client) rankingInfo(ctx context.Context, apiKey string) (rankingResponse, error) {
	var body rankingResponse
	status, err := c.postJSON(ctx, "/api/get_ranking_info", map[string]string{"api_key": apiKey}, &body)
	if err != nil {
		return rankingResponse{}, err
	}
	if status != http.StatusOK {
		return rankingResponse{}, fmt.Errorf("ranking info returned status %d", status)
	}
	return body, nil
}

// health probes /healthz.
func (c *client) health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
