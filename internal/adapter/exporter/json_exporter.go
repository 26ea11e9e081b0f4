package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corpgraph/kindred/internal/core/ports"
)

// JSONExporter renders scored connections as a versioned JSON bundle
// for programmatic consumers.
type JSONExporter struct {
	repo ports.ConnectionRepository
}

func NewJSONExporter(repo ports.ConnectionRepository) *JSONExporter {
	return &JSONExporter{repo: repo}
}

// ConnectionBundle is the top-level JSON feed envelope.
type ConnectionBundle struct {
	FeedVersion string             `json:"feed_version"`
	GeneratedAt string             `json:"generated_at"`
	Since       string             `json:"since"`
	Count       int                `json:"count"`
	Connections []ConnectionRecord `json:"connections"`
}

// ConnectionRecord is one scored pair inside the bundle.
type ConnectionRecord struct {
	ID            string   `json:"id"`
	CompanyNumber string   `json:"company_number"`
	OfficerA      string   `json:"officer_a"`
	OfficerB      string   `json:"officer_b"`
	TotalScore    float64  `json:"total_score"`
	Confidence    string   `json:"confidence"`
	Reasons       []string `json:"reasons"`
	ScoredAt      string   `json:"scored_at"`
}

// Export generates a JSON feed of connections scored since the given time.
func (e *JSONExporter) Export(ctx context.Context, since time.Time) (string, error) {
	// Default to last 24 hours if no time specified
	if since.IsZero() {
		since = time.Now().Add(-24 * time.Hour)
	}

	pairs, err := e.repo.FindSince(ctx, since, 10000)
	if err != nil {
		return "", fmt.Errorf("failed to fetch connections: %w", err)
	}

	bundle := ConnectionBundle{
		FeedVersion: "1.0",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Since:       since.UTC().Format(time.RFC3339),
		Count:       len(pairs),
		Connections: make([]ConnectionRecord, 0, len(pairs)),
	}

	for _, pair := range pairs {
		bundle.Connections = append(bundle.Connections, ConnectionRecord{
			ID:            pair.ID,
			CompanyNumber: pair.CompanyNumber,
			OfficerA:      pair.OfficerA,
			OfficerB:      pair.OfficerB,
			TotalScore:    pair.TotalScore,
			Confidence:    string(pair.Confidence),
			Reasons:       pair.Reasons,
			ScoredAt:      pair.ScoredAt.UTC().Format(time.RFC3339),
		})
	}

	jsonData, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal connection bundle: %w", err)
	}

	return string(jsonData), nil
}
