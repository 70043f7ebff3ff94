package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Config is the root configuration structure.
type Config struct {
	Scoring   ScoringConfig   `json:"scoring"`
	Bands     BandConfig      `json:"bands"`
	Histogram HistogramConfig `json:"histogram"`
	Aging     AgingConfig     `json:"aging"`
	Columns   ColumnConfig    `json:"columns"`
}

// ScoringConfig holds recovery probability scoring configuration.
type ScoringConfig struct {
	ScoreDivisor float64            `json:"scoreDivisor"` // Default: 1000
	Thresholds   RecoveryThresholds `json:"thresholds"`
}

// RecoveryThresholds for recovery level classification.
type RecoveryThresholds struct {
	Recoverable float64 `json:"recoverable"`
	Watch       float64 `json:"watch"`
}

func DefaultRecoveryThresholds() RecoveryThresholds {
	return RecoveryThresholds{
		Recoverable: 0.6,
		Watch:       0.3,
	}
}

// Classify returns the recovery level for a given probability.
func (t RecoveryThresholds) Classify(probability float64) RecoveryLevel {
	if probability >= t.Recoverable {
		return RecoveryLevelRecoverable
	}
	if probability >= t.Watch {
		return RecoveryLevelWatch
	}
	return RecoveryLevelLost
}

// RecoveryLevel represents the recovery classification of a customer.
type RecoveryLevel string

const (
	RecoveryLevelRecoverable RecoveryLevel = "recoverable"
	RecoveryLevelWatch       RecoveryLevel = "watch"
	RecoveryLevelLost        RecoveryLevel = "lost"
)

// BandConfig holds score band definitions used for debt aggregation.
// Edges define n+1 boundaries for n bands; Labels name each band in order.
type BandConfig struct {
	Edges  []float64 `json:"edges"`
	Labels []string  `json:"labels"`
}

// Validate checks that the band definition is usable: at least one band,
// matching label count and strictly ascending edges.
func (b BandConfig) Validate() error {
	if len(b.Edges) < 2 {
		return fmt.Errorf("bands: need at least 2 edges, got %d", len(b.Edges))
	}
	if len(b.Labels) != len(b.Edges)-1 {
		return fmt.Errorf("bands: %d edges require %d labels, got %d",
			len(b.Edges), len(b.Edges)-1, len(b.Labels))
	}
	if !sort.Float64sAreSorted(b.Edges) {
		return fmt.Errorf("bands: edges must be ascending")
	}
	for i := 1; i < len(b.Edges); i++ {
		if b.Edges[i] == b.Edges[i-1] {
			return fmt.Errorf("bands: duplicate edge %v", b.Edges[i])
		}
	}
	return nil
}

// HistogramConfig holds score distribution histogram options.
type HistogramConfig struct {
	Bins int `json:"bins"` // Default: 20
}

// AgingConfig holds delinquency aging bucket options. EdgesDays are the
// inner boundaries; the last bucket is open-ended.
type AgingConfig struct {
	EdgesDays []float64 `json:"edgesDays"`
}

// ColumnConfig lists accepted header names per semantic field. The first
// match in a CSV header wins; defaults cover both the canonical names and
// the Portuguese headers of the original data exports.
type ColumnConfig struct {
	CreditScore []string `json:"creditScore"`
	DaysOverdue []string `json:"daysOverdue"`
	DebtAmount  []string `json:"debtAmount"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			ScoreDivisor: 1000,
			Thresholds:   DefaultRecoveryThresholds(),
		},
		Bands: BandConfig{
			Edges:  []float64{0, 300, 500, 700, 1000},
			Labels: []string{"Very Low", "Low", "Medium", "High"},
		},
		Histogram: HistogramConfig{
			Bins: 20,
		},
		Aging: AgingConfig{
			EdgesDays: []float64{30, 90, 180},
		},
		Columns: ColumnConfig{
			CreditScore: []string{"credit_score", "score_credito"},
			DaysOverdue: []string{"days_overdue", "dias_atraso"},
			DebtAmount:  []string{"debt_amount", "valor_divida"},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".recupera.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".recupera.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".recupera.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Bands.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
