package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corpgraph/kindred/internal/core/domain"
)

// scoringFile is the YAML shape of a scoring configuration file. Every
// field is a pointer so an absent key keeps the engine default rather
// than zeroing it.
type scoringFile struct {
	SurnameSimilarityThreshold *int     `yaml:"surname_similarity_threshold"`
	SurnameScaledAward         *bool    `yaml:"surname_scaled_award"`
	SurnameMatchPoints         *float64 `yaml:"surname_match_points"`
	MiddleNamePoints           *float64 `yaml:"middle_name_points"`

	SiblingAgeRange    *float64 `yaml:"sibling_age_range"`
	GenerationalAgeGap *float64 `yaml:"generational_age_gap"`
	SiblingPoints      *float64 `yaml:"sibling_points"`
	GenerationalPoints *float64 `yaml:"generational_points"`

	SyncToleranceDays       *int     `yaml:"sync_tolerance_days"`
	ConcurrentServicePoints *float64 `yaml:"concurrent_service_points"`
	HistoricalSharedPoints  *float64 `yaml:"historical_shared_points"`
	SyncTimingPoints        *float64 `yaml:"sync_timing_points"`

	AddressProximityMeters *float64 `yaml:"address_proximity_meters"`
	ExactAddressPoints     *float64 `yaml:"exact_address_points"`
	ProximityPoints        *float64 `yaml:"proximity_points"`

	CompanyNamePoints *float64 `yaml:"company_name_points"`

	NameWeight        *float64 `yaml:"name_weight"`
	AgeWeight         *float64 `yaml:"age_weight"`
	AppointmentWeight *float64 `yaml:"appointment_weight"`
	AddressWeight     *float64 `yaml:"address_weight"`
	CompanyNameWeight *float64 `yaml:"company_name_weight"`

	MaxScore  *float64 `yaml:"max_score"`
	MediumCut *float64 `yaml:"medium_cut"`
	HighCut   *float64 `yaml:"high_cut"`
}

// LoadScoringConfig reads a YAML scoring configuration file and overlays
// it on the engine defaults. An empty path returns the defaults untouched.
// Validation is the scorer's job, not the loader's.
func LoadScoringConfig(path string) (domain.ScoringConfig, error) {
	cfg := domain.DefaultScoringConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read scoring config: %w", err)
	}

	var file scoringFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse scoring config: %w", err)
	}

	applyOverrides(&cfg, file)
	return cfg, nil
}

func applyOverrides(cfg *domain.ScoringConfig, file scoringFile) {
	setInt(&cfg.SurnameSimilarityThreshold, file.SurnameSimilarityThreshold)
	if file.SurnameScaledAward != nil {
		cfg.SurnameScaledAward = *file.SurnameScaledAward
	}
	setFloat(&cfg.SurnameMatchPoints, file.SurnameMatchPoints)
	setFloat(&cfg.MiddleNamePoints, file.MiddleNamePoints)

	setFloat(&cfg.SiblingAgeRange, file.SiblingAgeRange)
	setFloat(&cfg.GenerationalAgeGap, file.GenerationalAgeGap)
	setFloat(&cfg.SiblingPoints, file.SiblingPoints)
	setFloat(&cfg.GenerationalPoints, file.GenerationalPoints)

	setInt(&cfg.SyncToleranceDays, file.SyncToleranceDays)
	setFloat(&cfg.ConcurrentServicePoints, file.ConcurrentServicePoints)
	setFloat(&cfg.HistoricalSharedPoints, file.HistoricalSharedPoints)
	setFloat(&cfg.SyncTimingPoints, file.SyncTimingPoints)

	setFloat(&cfg.AddressProximityMeters, file.AddressProximityMeters)
	setFloat(&cfg.ExactAddressPoints, file.ExactAddressPoints)
	setFloat(&cfg.ProximityPoints, file.ProximityPoints)

	setFloat(&cfg.CompanyNamePoints, file.CompanyNamePoints)

	setFloat(&cfg.NameWeight, file.NameWeight)
	setFloat(&cfg.AgeWeight, file.AgeWeight)
	setFloat(&cfg.AppointmentWeight, file.AppointmentWeight)
	setFloat(&cfg.AddressWeight, file.AddressWeight)
	setFloat(&cfg.CompanyNameWeight, file.CompanyNameWeight)

	setFloat(&cfg.MaxScore, file.MaxScore)
	setFloat(&cfg.MediumCut, file.MediumCut)
	setFloat(&cfg.HighCut, file.HighCut)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
