package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"skinconsult-api/config"
)

// Prediction is the AI provider's verdict for one skin image.
type Prediction struct {
	Diagnosis  string  `json:"diagnosis"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
}

// Predictor scores an uploaded skin image. Consumed once at case-creation
// time.
type Predictor interface {
	Predict(ctx context.Context, filename string, file io.Reader) (*Prediction, error)
}

// httpPredictor talks to the FastAPI model server, which expects a
// multipart field named "file" on /predict.
type httpPredictor struct {
	client  *http.Client
	baseURL string
}

func NewHTTPPredictor(cfg config.AIConfig) Predictor {
	return &httpPredictor{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.URL,
	}
}

func (p *httpPredictor) Predict(ctx context.Context, filename string, file io.Reader) (*Prediction, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("ai server returned %d: %s", resp.StatusCode, body)
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode ai response: %w", err)
	}
	return &prediction, nil
}
