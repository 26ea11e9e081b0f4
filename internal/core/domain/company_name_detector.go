package domain

import (
	"fmt"
	"strings"
)

// corporateSuffixes are stripped before tokenizing so suffix noise never
// masks a surname token.
var corporateSuffixes = map[string]bool{
	"LIMITED": true,
	"LTD":     true,
	"PLC":     true,
	"LLP":     true,
	"LP":      true,
	"INC":     true,
	"CO":      true,
}

// CompanyNameDetector checks whether either officer's surname or middle
// names appear as a whole token inside the other officer's company name.
// Both directions are checked and contribute independently: two company
// names both carrying the family surname are two pieces of evidence.
type CompanyNameDetector struct {
	cfg *ScoringConfig
}

func NewCompanyNameDetector(cfg *ScoringConfig) *CompanyNameDetector {
	return &CompanyNameDetector{cfg: cfg}
}

func (d *CompanyNameDetector) Name() string { return "company_name" }

func (d *CompanyNameDetector) Detect(a, b Officer) DetectorResult {
	var result DetectorResult
	d.detectDirection(b, a.CompanyName, &result)
	d.detectDirection(a, b.CompanyName, &result)
	return result
}

// detectDirection looks for the given officer's names inside one company
// name. At most one award per direction, surname checked first.
func (d *CompanyNameDetector) detectDirection(other Officer, companyName string, result *DetectorResult) {
	tokens := companyNameTokens(companyName)
	if len(tokens) == 0 {
		return
	}

	if other.Surname != "" && tokens[other.Surname] {
		result.Points += d.cfg.CompanyNamePoints * d.cfg.CompanyNameWeight
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("Surname %s appears in company name %q", other.Surname, companyName))
		return
	}
	for _, middle := range other.MiddleNames {
		if tokens[strings.ToUpper(middle)] {
			result.Points += d.cfg.CompanyNamePoints * d.cfg.CompanyNameWeight
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Middle name %s appears in company name %q", middle, companyName))
			return
		}
	}
}

func companyNameTokens(name string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToUpper(name), func(r rune) bool {
		return !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9')
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !corporateSuffixes[f] {
			tokens[f] = true
		}
	}
	return tokens
}
