package domain

import (
	"errors"
	"testing"
)

func TestScoringConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScoringConfig)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *ScoringConfig) {}},
		{name: "threshold too high", mutate: func(c *ScoringConfig) { c.SurnameSimilarityThreshold = 101 }, wantErr: true},
		{name: "threshold negative", mutate: func(c *ScoringConfig) { c.SurnameSimilarityThreshold = -1 }, wantErr: true},
		{name: "negative sibling range", mutate: func(c *ScoringConfig) { c.SiblingAgeRange = -1 }, wantErr: true},
		{name: "generational below sibling", mutate: func(c *ScoringConfig) { c.GenerationalAgeGap = 2 }, wantErr: true},
		{name: "negative sync tolerance", mutate: func(c *ScoringConfig) { c.SyncToleranceDays = -1 }, wantErr: true},
		{name: "zero proximity threshold", mutate: func(c *ScoringConfig) { c.AddressProximityMeters = 0 }, wantErr: true},
		{name: "non-monotonic cuts", mutate: func(c *ScoringConfig) { c.HighCut = c.MediumCut }, wantErr: true},
		{name: "negative weight", mutate: func(c *ScoringConfig) { c.AgeWeight = -0.5 }, wantErr: true},
		{name: "negative points", mutate: func(c *ScoringConfig) { c.SiblingPoints = -1 }, wantErr: true},
		{name: "negative max score", mutate: func(c *ScoringConfig) { c.MaxScore = -10 }, wantErr: true},
		{name: "clamp enabled", mutate: func(c *ScoringConfig) { c.MaxScore = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultScoringConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("expected ErrInvalidConfiguration, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewScorerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.HighCut = 10
	cfg.MediumCut = 50

	if _, err := NewScorer(cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}
