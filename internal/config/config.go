package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides; "__" separates nesting levels,
// e.g. SENTIMENT_CLASSIFIER__API_KEY sets classifier.api_key.
const EnvPrefix = "SENTIMENT_"

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Vocabulary VocabularyConfig `koanf:"vocabulary"`
	Validity   ValidityConfig   `koanf:"validity"`
	Analysis   AnalysisConfig   `koanf:"analysis"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Cache      CacheConfig      `koanf:"cache"`
	Storage    StorageConfig    `koanf:"storage"`
	Queue      QueueConfig      `koanf:"queue"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	MaxBody         string        `koanf:"max_body"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type VocabularyConfig struct {
	Path string `koanf:"path"`
}

type ValidityConfig struct {
	MinTokens int     `koanf:"min_tokens"`
	MinRatio  float64 `koanf:"min_ratio"`
}

type AnalysisConfig struct {
	Delay time.Duration `koanf:"delay"`
}

type ClassifierConfig struct {
	Provider string        `koanf:"provider"`
	URL      string        `koanf:"url"`
	APIKey   string        `koanf:"api_key"`
	Model    string        `koanf:"model"`
	Timeout  time.Duration `koanf:"timeout"`
}

// CacheConfig configures the Redis result cache; empty Addr disables it.
type CacheConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

// StorageConfig selects Postgres history when DSN is set, otherwise an
// in-memory history of MemoryCapacity entries. Zero capacity disables history.
type StorageConfig struct {
	DSN            string `koanf:"dsn"`
	MemoryCapacity int    `koanf:"memory_capacity"`
}

// QueueConfig enables Kafka analysis events when Brokers is non-empty.
type QueueConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":8080",
			MaxBody:         "64K",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Vocabulary: VocabularyConfig{
			Path: "/usr/share/dict/words",
		},
		Validity: ValidityConfig{
			MinTokens: 2,
			MinRatio:  0.6,
		},
		Classifier: ClassifierConfig{
			Provider: "huggingface",
			Timeout:  30 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		Storage: StorageConfig{
			MemoryCapacity: 50,
		},
		Queue: QueueConfig{
			Topic: "sentiment.analyses",
		},
	}
}

// Load reads path (skipped when it does not exist) on top of the defaults,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

func (c *Config) Validate() error {
	if c.Vocabulary.Path == "" {
		return fmt.Errorf("vocabulary.path is required")
	}
	if c.Validity.MinTokens < 1 {
		return fmt.Errorf("validity.min_tokens must be at least 1, got %d", c.Validity.MinTokens)
	}
	if c.Validity.MinRatio < 0 || c.Validity.MinRatio > 1 {
		return fmt.Errorf("validity.min_ratio must be within [0,1], got %g", c.Validity.MinRatio)
	}
	switch c.Classifier.Provider {
	case "huggingface":
	case "openrouter":
		if c.Classifier.APIKey == "" {
			return fmt.Errorf("classifier.api_key is required for openrouter")
		}
		if c.Classifier.Model == "" {
			return fmt.Errorf("classifier.model is required for openrouter")
		}
	default:
		return fmt.Errorf("unknown classifier.provider %q", c.Classifier.Provider)
	}
	if c.Classifier.Timeout <= 0 {
		return fmt.Errorf("classifier.timeout must be positive")
	}
	if len(c.Queue.Brokers) > 0 && c.Queue.Topic == "" {
		return fmt.Errorf("queue.topic is required when queue.brokers is set")
	}
	return nil
}
