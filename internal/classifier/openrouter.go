package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sentimentform/internal/domain"
)

const DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouter asks a chat model to label the sentiment of the text.
type OpenRouter struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewOpenRouter(endpoint, apiKey, model string, timeout time.Duration) *OpenRouter {
	if endpoint == "" {
		endpoint = DefaultOpenRouterURL
	}
	return &OpenRouter{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

func (o *OpenRouter) Model() string {
	return o.model
}

func (o *OpenRouter) Classify(ctx context.Context, text string) (*domain.Sentiment, error) {
	prompt := fmt.Sprintf(`Classify the sentiment of this sentence:

"%s"

Respond in JSON format only:
{
  "label": "POSITIVE|NEGATIVE",
  "score": 0.0-1.0
}`, text)

	reqBody := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Choices) == 0 {
		return nil, ErrNoResult
	}

	return parseChatResponse(apiResp.Choices[0].Message.Content)
}

func parseChatResponse(content string) (*domain.Sentiment, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result labelScore
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}

	label := strings.ToUpper(strings.TrimSpace(result.Label))
	if label == "" {
		return nil, ErrNoResult
	}

	return &domain.Sentiment{Label: label, Score: clampScore(result.Score)}, nil
}
