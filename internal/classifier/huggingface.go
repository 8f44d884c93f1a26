package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sentimentform/internal/domain"
)

const (
	DefaultHuggingFaceURL   = "https://router.huggingface.co/hf-inference/models"
	DefaultHuggingFaceModel = "distilbert-base-uncased-finetuned-sst-2-english"
)

// HuggingFace calls a text-classification model on the Inference API.
type HuggingFace struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewHuggingFace(baseURL, apiKey, model string, timeout time.Duration) *HuggingFace {
	if baseURL == "" {
		baseURL = DefaultHuggingFaceURL
	}
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	return &HuggingFace{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HuggingFace) Model() string {
	return h.model
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (h *HuggingFace) Classify(ctx context.Context, text string) (*domain.Sentiment, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}

	url := h.baseURL + "/" + h.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("inference API error: %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseLabelScores(raw)
}

// parseLabelScores accepts both the batched [[...]] and the flat [...] shapes
// and returns the highest scoring label.
func parseLabelScores(raw []byte) (*domain.Sentiment, error) {
	var candidates []labelScore

	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) > 0 {
			candidates = nested[0]
		}
	} else if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}

	var best *labelScore
	for i := range candidates {
		if candidates[i].Label == "" {
			continue
		}
		if best == nil || candidates[i].Score > best.Score {
			best = &candidates[i]
		}
	}
	if best == nil {
		return nil, ErrNoResult
	}

	return &domain.Sentiment{Label: best.Label, Score: clampScore(best.Score)}, nil
}
