package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corpgraph/kindred/internal/core/ports"
)

// CSVExporter renders scored connections as a CSV feed for spreadsheet
// review and downstream case-management imports.
type CSVExporter struct {
	repo ports.ConnectionRepository
}

func NewCSVExporter(repo ports.ConnectionRepository) *CSVExporter {
	return &CSVExporter{repo: repo}
}

// Export generates a CSV feed of connections scored since the given time.
func (e *CSVExporter) Export(ctx context.Context, since time.Time) (string, error) {
	// Default to last 24 hours if no time specified
	if since.IsZero() {
		since = time.Now().Add(-24 * time.Hour)
	}

	pairs, err := e.repo.FindSince(ctx, since, 10000)
	if err != nil {
		return "", fmt.Errorf("failed to fetch connections: %w", err)
	}

	var output strings.Builder
	w := csv.NewWriter(&output)

	header := []string{"id", "company_number", "officer_a", "officer_b", "total_score", "confidence", "reasons", "scored_at"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, pair := range pairs {
		record := []string{
			pair.ID,
			pair.CompanyNumber,
			pair.OfficerA,
			pair.OfficerB,
			strconv.FormatFloat(pair.TotalScore, 'f', 1, 64),
			string(pair.Confidence),
			strings.Join(pair.Reasons, "; "),
			pair.ScoredAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return output.String(), nil
}
