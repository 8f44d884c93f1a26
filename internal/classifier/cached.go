package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"sentimentform/internal/domain"
	"sentimentform/internal/logging"
	"sentimentform/internal/metrics"
)

// Cache stores classifier results. A miss is (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) (*domain.Sentiment, error)
	Set(ctx context.Context, key string, s domain.Sentiment) error
}

// Cached memoizes another Classifier's results. Cache failures fall back to
// the wrapped classifier and are never returned to the caller.
type Cached struct {
	next  Classifier
	cache Cache
}

func NewCached(next Classifier, cache Cache) *Cached {
	return &Cached{next: next, cache: cache}
}

func (c *Cached) Model() string {
	return c.next.Model()
}

func (c *Cached) Classify(ctx context.Context, text string) (*domain.Sentiment, error) {
	key := CacheKey(c.next.Model(), text)

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.ClassifierCacheTotal.WithLabelValues("error").Inc()
		logging.WithError(err).Warn("classifier cache read failed")
	case cached != nil:
		metrics.ClassifierCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.ClassifierCacheTotal.WithLabelValues("miss").Inc()
	}

	result, err := c.next.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, *result); err != nil {
		logging.WithError(err).Warn("classifier cache write failed")
	}
	return result, nil
}

// CacheKey is stable for a given model and exact input text.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return model + ":" + hex.EncodeToString(sum[:])
}

// Timed records call latency for any Classifier.
type Timed struct {
	next Classifier
}

func NewTimed(next Classifier) *Timed {
	return &Timed{next: next}
}

func (t *Timed) Model() string {
	return t.next.Model()
}

func (t *Timed) Classify(ctx context.Context, text string) (*domain.Sentiment, error) {
	start := time.Now()
	defer func() {
		metrics.ClassifierDuration.WithLabelValues(t.next.Model()).Observe(time.Since(start).Seconds())
	}()
	return t.next.Classify(ctx, text)
}
