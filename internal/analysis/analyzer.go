// Package analysis runs a submission through validation and classification.
//
// Every submission ends in exactly one of three outcomes: empty input, an
// invalid sentence, or a completed analysis. Only the last one reaches the
// classifier.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sentimentform/internal/classifier"
	"sentimentform/internal/domain"
	apperrors "sentimentform/internal/errors"
	"sentimentform/internal/logging"
	"sentimentform/internal/metrics"
	"sentimentform/internal/queue"
	"sentimentform/internal/storage"
	"sentimentform/internal/validity"
)

type Status string

const (
	StatusEmpty   Status = "empty"
	StatusInvalid Status = "invalid"
	StatusDone    Status = "done"
	// StatusFailed is only a metrics label; a failed analysis returns an error.
	StatusFailed Status = "failed"
)

const (
	MsgEmpty   = "Please enter a sentence to analyze."
	MsgInvalid = "Invalid sentence. Please enter a meaningful sentence."
	MsgDone    = "Done analyzing!"
)

// Validator is satisfied by *validity.Filter.
type Validator interface {
	Valid(text string) bool
}

type Outcome struct {
	Status   Status
	Message  string
	Analysis *domain.Analysis
}

// Analyzer is built once at startup and shared across requests.
type Analyzer struct {
	validator  Validator
	classifier classifier.Classifier
	history    storage.AnalysisRepository
	publisher  queue.Publisher
	delay      time.Duration
	now        func() time.Time
}

type Option func(*Analyzer)

func WithHistory(r storage.AnalysisRepository) Option {
	return func(a *Analyzer) { a.history = r }
}

func WithPublisher(p queue.Publisher) Option {
	return func(a *Analyzer) { a.publisher = p }
}

// WithDelay pauses before every classification.
func WithDelay(d time.Duration) Option {
	return func(a *Analyzer) { a.delay = d }
}

func New(v Validator, c classifier.Classifier, opts ...Option) *Analyzer {
	a := &Analyzer{
		validator:  v,
		classifier: c,
		publisher:  queue.Noop{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (*Outcome, error) {
	if strings.TrimFunc(text, validity.IsSpace) == "" {
		metrics.AnalysesTotal.WithLabelValues(string(StatusEmpty)).Inc()
		return &Outcome{Status: StatusEmpty, Message: MsgEmpty}, nil
	}

	if !a.validator.Valid(text) {
		metrics.AnalysesTotal.WithLabelValues(string(StatusInvalid)).Inc()
		return &Outcome{Status: StatusInvalid, Message: MsgInvalid}, nil
	}

	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	sentiment, err := a.classifier.Classify(ctx, text)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(string(StatusFailed)).Inc()
		return nil, apperrors.ExternalError("sentiment classifier failed", err).
			WithContext("model", a.classifier.Model())
	}

	result := &domain.Analysis{
		ID:        uuid.NewString(),
		Text:      text,
		Sentiment: *sentiment,
		Model:     a.classifier.Model(),
		CreatedAt: a.now().UTC(),
	}
	metrics.AnalysesTotal.WithLabelValues(string(StatusDone)).Inc()

	a.record(ctx, *result)

	return &Outcome{Status: StatusDone, Message: MsgDone, Analysis: result}, nil
}

// Recent returns the latest analyses, or nil when history is disabled.
func (a *Analyzer) Recent(ctx context.Context, limit int) ([]domain.Analysis, error) {
	if a.history == nil {
		return nil, nil
	}
	return a.history.FindRecent(ctx, limit)
}

func (a *Analyzer) Find(ctx context.Context, id string) (*domain.Analysis, error) {
	if a.history == nil {
		return nil, nil
	}
	return a.history.FindByID(ctx, id)
}

func (a *Analyzer) HistoryEnabled() bool {
	return a.history != nil
}

func (a *Analyzer) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// record stores and publishes a completed analysis. Failures are logged only.
func (a *Analyzer) record(ctx context.Context, result domain.Analysis) {
	log := logging.WithAnalysis(result.ID)

	if a.history != nil {
		if err := a.history.Save(ctx, result); err != nil {
			metrics.SideEffectErrorsTotal.WithLabelValues("history").Inc()
			log.Error("failed to save analysis", "error", err)
		}
	}

	if err := a.publisher.Publish(ctx, result); err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("publish").Inc()
		log.Error("failed to publish analysis", "error", err)
	}

	log.Info("analysis completed",
		"label", result.Sentiment.Label,
		"score", FormatScore(result.Sentiment.Score),
		"model", result.Model)
}

// FormatScore renders a confidence with exactly three decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}
