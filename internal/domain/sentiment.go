package domain

import "time"

// Sentiment is the opaque (label, confidence) pair returned by a classifier.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Analysis struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}
