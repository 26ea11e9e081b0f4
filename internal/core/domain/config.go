package domain

import "fmt"

// ScoringConfig is the single immutable tunables object for the whole
// engine. It is validated once at Scorer construction and then shared by
// reference across every detector, so a batch of pairwise comparisons can
// run concurrently without locking.
type ScoringConfig struct {
	// Name signal.
	SurnameSimilarityThreshold int  // 0-100 levenshtein ratio, inclusive
	SurnameScaledAward         bool // scale points by ratio instead of flat award
	SurnameMatchPoints         float64
	MiddleNamePoints           float64 // per shared middle name

	// Age signal. Both bounds are inclusive; the zone strictly between them
	// contributes nothing.
	SiblingAgeRange    float64 // years
	GenerationalAgeGap float64 // years
	SiblingPoints      float64
	GenerationalPoints float64

	// Appointment signal.
	SyncToleranceDays       int // 0 means same calendar month
	ConcurrentServicePoints float64
	HistoricalSharedPoints  float64
	SyncTimingPoints        float64 // per synchronized date pair

	// Address signal.
	AddressProximityMeters float64
	ExactAddressPoints     float64
	ProximityPoints        float64

	// Company-name signal, per matching direction.
	CompanyNamePoints float64

	// Per-detector weight multipliers applied to that detector's points.
	NameWeight        float64
	AgeWeight         float64
	AppointmentWeight float64
	AddressWeight     float64
	CompanyNameWeight float64

	// MaxScore clamps the aggregate when > 0.
	MaxScore float64

	// Confidence cut points: total < MediumCut is low, total < HighCut is
	// medium, anything else high. Must be monotonic.
	MediumCut float64
	HighCut   float64
}

// DefaultScoringConfig returns the documented defaults. The point values
// and cut points are deliberate choices, not derived from training data.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		SurnameSimilarityThreshold: 85,
		SurnameMatchPoints:         30,
		MiddleNamePoints:           15,

		SiblingAgeRange:    3,
		GenerationalAgeGap: 30,
		SiblingPoints:      20,
		GenerationalPoints: 30,

		SyncToleranceDays:       0, // same calendar month
		ConcurrentServicePoints: 40,
		HistoricalSharedPoints:  15,
		SyncTimingPoints:        10,

		AddressProximityMeters: 500,
		ExactAddressPoints:     35,
		ProximityPoints:        20,

		CompanyNamePoints: 10,

		NameWeight:        1,
		AgeWeight:         1,
		AppointmentWeight: 1,
		AddressWeight:     1,
		CompanyNameWeight: 1,

		MediumCut: 40,
		HighCut:   80,
	}
}

// Validate checks ranges and monotonicity. Called once by NewScorer; never
// re-checked per scoring call.
func (c ScoringConfig) Validate() error {
	if c.SurnameSimilarityThreshold < 0 || c.SurnameSimilarityThreshold > 100 {
		return fmt.Errorf("%w: surname similarity threshold %d outside 0-100", ErrInvalidConfiguration, c.SurnameSimilarityThreshold)
	}
	if c.SiblingAgeRange < 0 {
		return fmt.Errorf("%w: sibling age range must be non-negative", ErrInvalidConfiguration)
	}
	if c.GenerationalAgeGap <= c.SiblingAgeRange {
		return fmt.Errorf("%w: generational gap (%.1f) must exceed sibling range (%.1f)", ErrInvalidConfiguration, c.GenerationalAgeGap, c.SiblingAgeRange)
	}
	if c.SyncToleranceDays < 0 {
		return fmt.Errorf("%w: sync tolerance must be non-negative", ErrInvalidConfiguration)
	}
	if c.AddressProximityMeters <= 0 {
		return fmt.Errorf("%w: address proximity threshold must be positive", ErrInvalidConfiguration)
	}
	if c.MediumCut < 0 || c.HighCut <= c.MediumCut {
		return fmt.Errorf("%w: confidence cuts must satisfy 0 <= medium < high (got %.1f, %.1f)", ErrInvalidConfiguration, c.MediumCut, c.HighCut)
	}
	if c.MaxScore < 0 {
		return fmt.Errorf("%w: max score must be non-negative", ErrInvalidConfiguration)
	}
	for name, w := range map[string]float64{
		"name":         c.NameWeight,
		"age":          c.AgeWeight,
		"appointment":  c.AppointmentWeight,
		"address":      c.AddressWeight,
		"company_name": c.CompanyNameWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s weight must be non-negative", ErrInvalidConfiguration, name)
		}
	}
	for name, p := range map[string]float64{
		"surname_match":      c.SurnameMatchPoints,
		"middle_name":        c.MiddleNamePoints,
		"sibling":            c.SiblingPoints,
		"generational":       c.GenerationalPoints,
		"concurrent_service": c.ConcurrentServicePoints,
		"historical_shared":  c.HistoricalSharedPoints,
		"sync_timing":        c.SyncTimingPoints,
		"exact_address":      c.ExactAddressPoints,
		"proximity":          c.ProximityPoints,
		"company_name":       c.CompanyNamePoints,
	} {
		if p < 0 {
			return fmt.Errorf("%w: %s points must be non-negative", ErrInvalidConfiguration, name)
		}
	}
	return nil
}
