package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFace_Classify(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[{"label":"NEGATIVE","score":0.013},{"label":"POSITIVE","score":0.987}]]`))
	}))
	defer srv.Close()

	hf := NewHuggingFace(srv.URL+"/", "hf_token", "", time.Second)
	got, err := hf.Classify(context.Background(), "I love this!")
	require.NoError(t, err)

	assert.Equal(t, "POSITIVE", got.Label)
	assert.InDelta(t, 0.987, got.Score, 1e-9)
	assert.Equal(t, "/"+DefaultHuggingFaceModel, gotPath)
	assert.Equal(t, "Bearer hf_token", gotAuth)
	assert.Equal(t, "I love this!", gotBody["inputs"])
	assert.Equal(t, DefaultHuggingFaceModel, hf.Model())
}

func TestHuggingFace_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"label":"NEGATIVE","score":0.9}]`))
	}))
	defer srv.Close()

	got, err := NewHuggingFace(srv.URL, "", "custom/model", time.Second).Classify(context.Background(), "bad day")
	require.NoError(t, err)
	assert.Equal(t, "NEGATIVE", got.Label)
}

func TestHuggingFace_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model is loading"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHuggingFace(srv.URL, "", "", time.Second).Classify(context.Background(), "hello there")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model is loading")
}

func TestParseLabelScores(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		label   string
		score   float64
		wantErr error
	}{
		{name: "nested", raw: `[[{"label":"POSITIVE","score":0.7},{"label":"NEGATIVE","score":0.3}]]`, label: "POSITIVE", score: 0.7},
		{name: "flat", raw: `[{"label":"NEGATIVE","score":0.8},{"label":"POSITIVE","score":0.2}]`, label: "NEGATIVE", score: 0.8},
		{name: "clamped", raw: `[{"label":"POSITIVE","score":1.5}]`, label: "POSITIVE", score: 1},
		{name: "empty nested", raw: `[]`, wantErr: ErrNoResult},
		{name: "unlabelled", raw: `[{"score":0.5}]`, wantErr: ErrNoResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLabelScores([]byte(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, got.Label)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
		})
	}

	_, err := parseLabelScores([]byte(`{"error":"bad"}`))
	assert.Error(t, err)
}
