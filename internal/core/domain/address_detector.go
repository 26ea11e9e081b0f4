package domain

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// AddressDetector compares addresses by normalized string equality first
// and falls back to great-circle proximity when both records carry
// pre-resolved coordinates. With neither, it contributes nothing.
type AddressDetector struct {
	cfg *ScoringConfig
}

func NewAddressDetector(cfg *ScoringConfig) *AddressDetector {
	return &AddressDetector{cfg: cfg}
}

func (d *AddressDetector) Name() string { return "address" }

func (d *AddressDetector) Detect(a, b Officer) DetectorResult {
	var result DetectorResult

	if a.Address == nil || b.Address == nil {
		return result
	}

	normA := normalizeAddressString(a.Address.FullAddress)
	normB := normalizeAddressString(b.Address.FullAddress)
	if normA != "" && normA == normB {
		result.Points = d.cfg.ExactAddressPoints * d.cfg.AddressWeight
		result.Reasons = append(result.Reasons, "Exact address match")
		return result
	}

	if !a.Address.HasCoordinates() || !b.Address.HasCoordinates() {
		return result
	}

	meters := geo.DistanceHaversine(
		orb.Point{*a.Address.Longitude, *a.Address.Latitude},
		orb.Point{*b.Address.Longitude, *b.Address.Latitude},
	)
	if meters <= d.cfg.AddressProximityMeters {
		result.Points = d.cfg.ProximityPoints * d.cfg.AddressWeight
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("Addresses approximately %.0f m apart", meters))
	}

	return result
}
