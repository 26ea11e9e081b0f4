package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/corpgraph/kindred/internal/core/domain"
)

// JSONFileProvider serves officer records from a local JSON export instead
// of the live registry. The file maps company numbers to officer lists:
//
//	{
//	  "01329163": [ {"full_name": "...", "roles": [...]}, ... ]
//	}
//
// Useful for offline analysis and for replaying bulk registry snapshots.
type JSONFileProvider struct {
	path      string
	companies map[string][]domain.RawOfficer
}

func NewJSONFileProvider(path string) *JSONFileProvider {
	return &JSONFileProvider{path: path}
}

func (p *JSONFileProvider) Name() string {
	return "json-file"
}

func (p *JSONFileProvider) FetchOfficers(ctx context.Context, companyNumber string) ([]domain.RawOfficer, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	officers, ok := p.companies[companyNumber]
	if !ok {
		return nil, fmt.Errorf("company %s not present in %s", companyNumber, p.path)
	}
	return officers, nil
}

// Companies returns every company number in the file, for callers that
// want to analyze the whole export.
func (p *JSONFileProvider) Companies() ([]string, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(p.companies))
	for number := range p.companies {
		numbers = append(numbers, number)
	}
	return numbers, nil
}

func (p *JSONFileProvider) load() error {
	if p.companies != nil {
		return nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read officer export: %w", err)
	}
	if err := json.Unmarshal(data, &p.companies); err != nil {
		return fmt.Errorf("failed to parse officer export: %w", err)
	}
	return nil
}
