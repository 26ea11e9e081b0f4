package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRecord is returned when a record is missing the one required
// identity field (full_name). Everything else degrades to signal-unavailable.
var ErrMalformedRecord = errors.New("malformed officer record")

// ErrInvalidConfiguration is returned by NewScorer when thresholds or cut
// points are out of range or non-monotonic. Never raised mid-scoring.
var ErrInvalidConfiguration = errors.New("invalid scoring configuration")

// DatePrecision tags how much of a PartialDate is actually known.
type DatePrecision int

const (
	PrecisionNone DatePrecision = iota
	PrecisionMonth
	PrecisionDay
)

// PartialDate is a date that may be known to the day, only to the month, or
// not at all. Officer DOBs from registry data are usually year-month only.
type PartialDate struct {
	Year      int
	Month     time.Month
	Day       int
	Precision DatePrecision
}

// ParsePartialDate accepts "2006-01-02" and "2006-01". An empty string
// parses to an unknown date without error; anything else malformed errors.
func ParsePartialDate(s string) (PartialDate, error) {
	if s == "" {
		return PartialDate{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return PartialDate{Year: t.Year(), Month: t.Month(), Day: t.Day(), Precision: PrecisionDay}, nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return PartialDate{Year: t.Year(), Month: t.Month(), Precision: PrecisionMonth}, nil
	}
	return PartialDate{}, fmt.Errorf("unparseable date %q", s)
}

// Known reports whether the date carries at least year-month information.
func (d PartialDate) Known() bool {
	return d.Precision != PrecisionNone
}

// Earliest returns the first moment the partial date could refer to.
func (d PartialDate) Earliest() time.Time {
	switch d.Precision {
	case PrecisionDay:
		return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	case PrecisionMonth:
		return time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

// Latest returns the last day the partial date could refer to.
func (d PartialDate) Latest() time.Time {
	switch d.Precision {
	case PrecisionDay:
		return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	case PrecisionMonth:
		// Last day of the month.
		return time.Date(d.Year, d.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}
	return time.Time{}
}

// SameMonth reports whether two known dates fall in the same calendar month.
func (d PartialDate) SameMonth(other PartialDate) bool {
	return d.Known() && other.Known() && d.Year == other.Year && d.Month == other.Month
}

// YearsBetween returns the absolute gap in fractional years between two known
// dates, at the coarsest precision the pair supports. Month-only dates are
// compared by whole months so the result never overstates what is known.
func YearsBetween(a, b PartialDate) float64 {
	if !a.Known() || !b.Known() {
		return 0
	}
	if a.Precision == PrecisionDay && b.Precision == PrecisionDay {
		days := b.Earliest().Sub(a.Earliest()).Hours() / 24
		if days < 0 {
			days = -days
		}
		return days / 365.25
	}
	months := (b.Year-a.Year)*12 + int(b.Month-a.Month)
	if months < 0 {
		months = -months
	}
	return float64(months) / 12
}

func (d PartialDate) String() string {
	switch d.Precision {
	case PrecisionDay:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
	case PrecisionMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
	}
	return "unknown"
}

// RawOfficer is the wire/ingest shape of an officer record, as produced by
// registry adapters or JSON exports. All dates are strings; the normalizer
// turns this into an Officer before any detector sees it.
type RawOfficer struct {
	FullName    string      `json:"full_name"`
	MiddleNames []string    `json:"middle_names,omitempty"`
	Surname     string      `json:"surname,omitempty"`
	DateOfBirth string      `json:"date_of_birth,omitempty"`
	Roles       []RawRole   `json:"roles,omitempty"`
	Address     *RawAddress `json:"address,omitempty"`
	CompanyName string      `json:"company_name,omitempty"`
}

type RawRole struct {
	CompanyNumber   string `json:"company_number"`
	RoleType        string `json:"role_type"`
	AppointedOn     string `json:"appointed_on,omitempty"`
	AppointedBefore string `json:"appointed_before,omitempty"`
	ResignedOn      string `json:"resigned_on,omitempty"`
}

type RawAddress struct {
	FullAddress string   `json:"full_address"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// Officer is the canonical, normalized record detectors operate on.
// Display casing is preserved for reasons; comparison forms are uppercase.
type Officer struct {
	FullName    string   // original casing, trimmed
	Surname     string   // uppercase comparison form
	MiddleNames []string // original casing, trimmed
	DateOfBirth PartialDate
	Roles       []Role
	Address     *Address
	CompanyName string // original casing, trimmed
}

// Role is one appointment at one company. AppointedBefore is a
// not-later-than bound on an unknown true appointment date and is never
// conflated with AppointedOn.
type Role struct {
	CompanyNumber   string
	RoleType        string
	AppointedOn     PartialDate
	AppointedBefore PartialDate
	ResignedOn      PartialDate
}

// Address carries the raw display string plus optional pre-resolved
// coordinates. Without coordinates the address signal falls back to exact
// string comparison only.
type Address struct {
	FullAddress string
	Latitude    *float64
	Longitude   *float64
}

// HasCoordinates reports whether both latitude and longitude are present.
func (a *Address) HasCoordinates() bool {
	return a != nil && a.Latitude != nil && a.Longitude != nil
}
