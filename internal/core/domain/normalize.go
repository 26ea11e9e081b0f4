package domain

import (
	"fmt"
	"strings"
)

// NormalizeOfficer canonicalizes a raw officer record before scoring.
// It fails only when full_name is absent or blank; every other field that
// cannot be parsed is stored as absent so the relevant detector contributes
// nothing instead of erroring.
func NormalizeOfficer(raw RawOfficer) (Officer, error) {
	fullName := strings.TrimSpace(raw.FullName)
	if fullName == "" {
		return Officer{}, fmt.Errorf("%w: full_name is required", ErrMalformedRecord)
	}

	officer := Officer{
		FullName:    fullName,
		Surname:     normalizeSurname(raw.Surname, fullName),
		CompanyName: strings.TrimSpace(raw.CompanyName),
	}

	for _, m := range raw.MiddleNames {
		m = strings.TrimSpace(m)
		if m != "" {
			officer.MiddleNames = append(officer.MiddleNames, m)
		}
	}

	// An unparseable DOB degrades to unknown; the age signal then stays silent.
	if dob, err := ParsePartialDate(strings.TrimSpace(raw.DateOfBirth)); err == nil {
		officer.DateOfBirth = dob
	}

	for _, r := range raw.Roles {
		officer.Roles = append(officer.Roles, normalizeRole(r))
	}

	if raw.Address != nil {
		addr := strings.TrimSpace(raw.Address.FullAddress)
		if addr != "" || raw.Address.Latitude != nil {
			officer.Address = &Address{
				FullAddress: addr,
				Latitude:    raw.Address.Latitude,
				Longitude:   raw.Address.Longitude,
			}
		}
	}

	return officer, nil
}

func normalizeRole(raw RawRole) Role {
	role := Role{
		CompanyNumber: strings.TrimSpace(raw.CompanyNumber),
		RoleType:      strings.ToLower(strings.TrimSpace(raw.RoleType)),
	}
	if d, err := ParsePartialDate(strings.TrimSpace(raw.AppointedOn)); err == nil {
		role.AppointedOn = d
	}
	if d, err := ParsePartialDate(strings.TrimSpace(raw.AppointedBefore)); err == nil {
		role.AppointedBefore = d
	}
	if d, err := ParsePartialDate(strings.TrimSpace(raw.ResignedOn)); err == nil {
		role.ResignedOn = d
	}
	return role
}

// normalizeSurname prefers the explicit surname field and otherwise derives
// it from the last token of the full name. Always uppercase for comparison.
func normalizeSurname(surname, fullName string) string {
	s := strings.TrimSpace(surname)
	if s == "" {
		tokens := strings.Fields(fullName)
		if len(tokens) > 0 {
			s = tokens[len(tokens)-1]
		}
	}
	return strings.ToUpper(s)
}

// normalizeAddressString produces the case- and whitespace-insensitive form
// used for exact address comparison.
func normalizeAddressString(addr string) string {
	return strings.Join(strings.Fields(strings.ToUpper(addr)), " ")
}
