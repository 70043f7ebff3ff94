package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecoveryThresholds_Classify(t *testing.T) {
	thresholds := RecoveryThresholds{Recoverable: 0.6, Watch: 0.3}

	tests := []struct {
		name        string
		probability float64
		expected    RecoveryLevel
	}{
		{name: "Recoverable", probability: 0.8, expected: RecoveryLevelRecoverable},
		{name: "Recoverable boundary", probability: 0.6, expected: RecoveryLevelRecoverable},
		{name: "Just below recoverable", probability: 0.59, expected: RecoveryLevelWatch},
		{name: "Watch", probability: 0.4, expected: RecoveryLevelWatch},
		{name: "Watch boundary", probability: 0.3, expected: RecoveryLevelWatch},
		{name: "Just below watch", probability: 0.29, expected: RecoveryLevelLost},
		{name: "Lost", probability: 0.1, expected: RecoveryLevelLost},
		{name: "Zero probability", probability: 0.0, expected: RecoveryLevelLost},
		{name: "Certain recovery", probability: 1.0, expected: RecoveryLevelRecoverable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := thresholds.Classify(tt.probability)
			if result != tt.expected {
				t.Errorf("Classify(%f) = %q, expected %q", tt.probability, result, tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scoring.ScoreDivisor != 1000 {
		t.Errorf("ScoreDivisor = %f, expected 1000", cfg.Scoring.ScoreDivisor)
	}
	if cfg.Scoring.Thresholds.Recoverable != 0.6 {
		t.Errorf("Thresholds.Recoverable = %f, expected 0.6", cfg.Scoring.Thresholds.Recoverable)
	}
	if cfg.Scoring.Thresholds.Watch != 0.3 {
		t.Errorf("Thresholds.Watch = %f, expected 0.3", cfg.Scoring.Thresholds.Watch)
	}
	if len(cfg.Bands.Edges) != 5 {
		t.Errorf("Bands.Edges length = %d, expected 5", len(cfg.Bands.Edges))
	}
	if len(cfg.Bands.Labels) != 4 {
		t.Errorf("Bands.Labels length = %d, expected 4", len(cfg.Bands.Labels))
	}
	if cfg.Bands.Labels[0] != "Very Low" || cfg.Bands.Labels[3] != "High" {
		t.Errorf("Bands.Labels = %v, expected Very Low..High", cfg.Bands.Labels)
	}
	if cfg.Histogram.Bins != 20 {
		t.Errorf("Histogram.Bins = %d, expected 20", cfg.Histogram.Bins)
	}
	if len(cfg.Aging.EdgesDays) != 3 {
		t.Errorf("Aging.EdgesDays length = %d, expected 3", len(cfg.Aging.EdgesDays))
	}
	if len(cfg.Columns.CreditScore) == 0 || cfg.Columns.CreditScore[0] != "credit_score" {
		t.Errorf("Columns.CreditScore = %v, expected canonical name first", cfg.Columns.CreditScore)
	}
	if err := cfg.Bands.Validate(); err != nil {
		t.Errorf("default band config invalid: %v", err)
	}
}

func TestBandConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bands   BandConfig
		wantErr bool
	}{
		{
			name:  "Default bands",
			bands: BandConfig{Edges: []float64{0, 300, 500, 700, 1000}, Labels: []string{"a", "b", "c", "d"}},
		},
		{
			name:    "Too few edges",
			bands:   BandConfig{Edges: []float64{0}, Labels: []string{}},
			wantErr: true,
		},
		{
			name:    "Label count mismatch",
			bands:   BandConfig{Edges: []float64{0, 500, 1000}, Labels: []string{"only one"}},
			wantErr: true,
		},
		{
			name:    "Unsorted edges",
			bands:   BandConfig{Edges: []float64{0, 700, 500, 1000}, Labels: []string{"a", "b", "c"}},
			wantErr: true,
		},
		{
			name:    "Duplicate edge",
			bands:   BandConfig{Edges: []float64{0, 500, 500, 1000}, Labels: []string{"a", "b", "c"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bands.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scoring.ScoreDivisor != 1000 {
		t.Errorf("ScoreDivisor = %f, expected default 1000", cfg.Scoring.ScoreDivisor)
	}
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recupera.json")
	content := `{"scoring": {"scoreDivisor": 850, "thresholds": {"recoverable": 0.7, "watch": 0.3}}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scoring.ScoreDivisor != 850 {
		t.Errorf("ScoreDivisor = %f, expected 850", cfg.Scoring.ScoreDivisor)
	}
	if cfg.Scoring.Thresholds.Recoverable != 0.7 {
		t.Errorf("Thresholds.Recoverable = %f, expected 0.7", cfg.Scoring.Thresholds.Recoverable)
	}
	// Untouched sections keep their defaults.
	if cfg.Histogram.Bins != 20 {
		t.Errorf("Histogram.Bins = %d, expected default 20", cfg.Histogram.Bins)
	}
	if len(cfg.Bands.Labels) != 4 {
		t.Errorf("Bands.Labels length = %d, expected default 4", len(cfg.Bands.Labels))
	}
}

func TestLoadConfig_RejectsInvalidBands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recupera.json")
	content := `{"bands": {"edges": [0, 500], "labels": ["a", "b"]}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for mismatched band labels, got nil")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recupera.json")

	cfg := DefaultConfig()
	cfg.Scoring.Thresholds.Recoverable = 0.65

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Scoring.Thresholds.Recoverable != 0.65 {
		t.Errorf("Thresholds.Recoverable = %f, expected 0.65", loaded.Scoring.Thresholds.Recoverable)
	}
}
