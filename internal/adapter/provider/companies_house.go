package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/corpgraph/kindred/internal/core/domain"
)

const companiesHouseBaseURL = "https://api.company-information.service.gov.uk"

// httpDoer is satisfied by *http.Client and *ResilientClient.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CompaniesHouseProvider fetches the officer list of a company from a
// Companies House style registry API. The API key travels as HTTP basic
// auth username with an empty password.
type CompaniesHouseProvider struct {
	client  httpDoer
	baseURL string
	apiKey  string
}

func NewCompaniesHouseProvider(client httpDoer, apiKey string) *CompaniesHouseProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &CompaniesHouseProvider{
		client:  client,
		baseURL: companiesHouseBaseURL,
		apiKey:  apiKey,
	}
}

// WithBaseURL overrides the registry endpoint, used by tests and mirrors.
func (p *CompaniesHouseProvider) WithBaseURL(url string) *CompaniesHouseProvider {
	p.baseURL = strings.TrimSuffix(url, "/")
	return p
}

func (p *CompaniesHouseProvider) Name() string {
	return "companies-house"
}

type officerListResponse struct {
	Items      []officerItem `json:"items"`
	TotalCount int           `json:"total_results"`
}

type officerItem struct {
	Name        string `json:"name"` // "GREGORY, William John"
	OfficerRole string `json:"officer_role"`
	AppointedOn string `json:"appointed_on"`
	ResignedOn  string `json:"resigned_on"`
	DateOfBirth *struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Day   int `json:"day"`
	} `json:"date_of_birth"`
	Address *struct {
		Premises     string `json:"premises"`
		AddressLine1 string `json:"address_line_1"`
		AddressLine2 string `json:"address_line_2"`
		Locality     string `json:"locality"`
		PostalCode   string `json:"postal_code"`
	} `json:"address"`
}

func (p *CompaniesHouseProvider) FetchOfficers(ctx context.Context, companyNumber string) ([]domain.RawOfficer, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("registry API key is missing")
	}

	url := fmt.Sprintf("%s/company/%s/officers", p.baseURL, companyNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(p.apiKey, "")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch officers for %s: %w", companyNumber, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var list officerListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode officer list: %w", err)
	}

	officers := make([]domain.RawOfficer, 0, len(list.Items))
	for _, item := range list.Items {
		officers = append(officers, p.toRawOfficer(item, companyNumber))
	}
	return officers, nil
}

// toRawOfficer reshapes one registry item into the scoring input shape.
// Registry DOBs carry year and month only; that partial precision is kept.
func (p *CompaniesHouseProvider) toRawOfficer(item officerItem, companyNumber string) domain.RawOfficer {
	surname, fullName, middles := splitRegistryName(item.Name)

	raw := domain.RawOfficer{
		FullName:    fullName,
		Surname:     surname,
		MiddleNames: middles,
		Roles: []domain.RawRole{
			{
				CompanyNumber: companyNumber,
				RoleType:      item.OfficerRole,
				AppointedOn:   item.AppointedOn,
				ResignedOn:    item.ResignedOn,
			},
		},
	}

	if dob := item.DateOfBirth; dob != nil && dob.Year > 0 && dob.Month > 0 {
		if dob.Day > 0 {
			raw.DateOfBirth = fmt.Sprintf("%04d-%02d-%02d", dob.Year, dob.Month, dob.Day)
		} else {
			raw.DateOfBirth = fmt.Sprintf("%04d-%02d", dob.Year, dob.Month)
		}
	}

	if addr := item.Address; addr != nil {
		parts := []string{addr.Premises, addr.AddressLine1, addr.AddressLine2, addr.Locality, addr.PostalCode}
		var nonEmpty []string
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				nonEmpty = append(nonEmpty, part)
			}
		}
		if len(nonEmpty) > 0 {
			raw.Address = &domain.RawAddress{FullAddress: strings.Join(nonEmpty, ", ")}
		}
	}

	return raw
}

// splitRegistryName parses the registry's "SURNAME, First Middle..." form
// into surname, display full name, and middle names. Names without the
// comma convention pass through unchanged and the surname is derived later
// by the normalizer.
func splitRegistryName(name string) (surname, fullName string, middles []string) {
	name = strings.TrimSpace(name)
	idx := strings.Index(name, ",")
	if idx < 0 {
		return "", name, nil
	}

	surname = strings.TrimSpace(name[:idx])
	forenames := strings.Fields(strings.TrimSpace(name[idx+1:]))
	if len(forenames) > 1 {
		middles = forenames[1:]
	}
	fullName = strings.Join(append(forenames, surname), " ")
	return surname, fullName, middles
}
