package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"skinconsult-api/config"

	"github.com/google/uuid"
)

// PushRelay delivers a notification to the user's devices. Delivery is best
// effort; callers must treat errors as non-fatal.
type PushRelay interface {
	Send(ctx context.Context, userID uuid.UUID, title, message string) error
}

type noopRelay struct{}

func NewNoopRelay() PushRelay {
	return &noopRelay{}
}

func (noopRelay) Send(ctx context.Context, userID uuid.UUID, title, message string) error {
	return nil
}

// httpRelay posts to a OneSignal-compatible push gateway.
type httpRelay struct {
	client *http.Client
	url    string
	apiKey string
}

func NewHTTPRelay(cfg config.PushConfig) PushRelay {
	if !cfg.Enabled || cfg.URL == "" {
		return NewNoopRelay()
	}
	return &httpRelay{
		client: &http.Client{Timeout: cfg.Timeout},
		url:    cfg.URL,
		apiKey: cfg.APIKey,
	}
}

func (r *httpRelay) Send(ctx context.Context, userID uuid.UUID, title, message string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"external_user_id": userID.String(),
		"title":            title,
		"message":          message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
