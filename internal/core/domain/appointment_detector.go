package domain

import (
	"fmt"
	"time"
)

// AppointmentDetector compares the two officers' role lists for shared
// companies, overlapping tenure, and synchronized appointment/resignation
// timing. The timing check is cross-company and can fire without any shared
// company number.
type AppointmentDetector struct {
	cfg *ScoringConfig
}

func NewAppointmentDetector(cfg *ScoringConfig) *AppointmentDetector {
	return &AppointmentDetector{cfg: cfg}
}

func (d *AppointmentDetector) Name() string { return "appointment" }

func (d *AppointmentDetector) Detect(a, b Officer) DetectorResult {
	var result DetectorResult

	for _, roleA := range a.Roles {
		for _, roleB := range b.Roles {
			if roleA.CompanyNumber == "" || roleA.CompanyNumber != roleB.CompanyNumber {
				continue
			}
			if tenuresOverlap(roleA, roleB) {
				result.Points += d.cfg.ConcurrentServicePoints * d.cfg.AppointmentWeight
				result.Reasons = append(result.Reasons,
					fmt.Sprintf("Concurrent service at company %s", roleA.CompanyNumber))
			} else {
				result.Points += d.cfg.HistoricalSharedPoints * d.cfg.AppointmentWeight
				result.Reasons = append(result.Reasons,
					fmt.Sprintf("Historical shared company %s", roleA.CompanyNumber))
			}
		}
	}

	d.detectSynchronizedTiming(a, b, &result)

	// Contextual only: multiple roles at one company are flagged for human
	// review but never add points, and are reported only when the detector
	// actually fired so a zero-point result stays reason-free.
	if result.Points > 0 {
		for _, officer := range []Officer{a, b} {
			for _, company := range multipleRoleCompanies(officer) {
				result.Reasons = append(result.Reasons,
					fmt.Sprintf("Note: %s holds multiple roles at company %s", officer.FullName, company))
			}
		}
	}

	return result
}

// detectSynchronizedTiming compares appointment dates against appointment
// dates and resignation dates against resignation dates across the full
// role lists. Only exact appointment dates take part: an appointed_before
// bound does not carry enough precision to claim synchronization.
func (d *AppointmentDetector) detectSynchronizedTiming(a, b Officer, result *DetectorResult) {
	for _, roleA := range a.Roles {
		for _, roleB := range b.Roles {
			if d.synchronized(roleA.AppointedOn, roleB.AppointedOn) {
				result.Points += d.cfg.SyncTimingPoints * d.cfg.AppointmentWeight
				result.Reasons = append(result.Reasons,
					fmt.Sprintf("Synchronized appointment timing: %s", timingPair(roleA.AppointedOn, roleB.AppointedOn)))
			}
			if d.synchronized(roleA.ResignedOn, roleB.ResignedOn) {
				result.Points += d.cfg.SyncTimingPoints * d.cfg.AppointmentWeight
				result.Reasons = append(result.Reasons,
					fmt.Sprintf("Synchronized resignation timing: %s", timingPair(roleA.ResignedOn, roleB.ResignedOn)))
			}
		}
	}
}

// synchronized applies the configured tolerance window. A zero tolerance
// means same calendar month, which month-precision dates can satisfy; a
// day-count tolerance needs day precision on both sides.
func (d *AppointmentDetector) synchronized(x, y PartialDate) bool {
	if !x.Known() || !y.Known() {
		return false
	}
	if d.cfg.SyncToleranceDays == 0 {
		return x.SameMonth(y)
	}
	if x.Precision != PrecisionDay || y.Precision != PrecisionDay {
		return false
	}
	days := x.Earliest().Sub(y.Earliest()).Hours() / 24
	if days < 0 {
		days = -days
	}
	return days <= float64(d.cfg.SyncToleranceDays)
}

// timingPair renders the two dates in chronological order so the reason
// text is identical whichever record comes first.
func timingPair(x, y PartialDate) string {
	if y.Earliest().Before(x.Earliest()) {
		x, y = y, x
	}
	return fmt.Sprintf("%s and %s", x, y)
}

// tenuresOverlap reports whether two tenure intervals share at least one
// day. The comparison is conservative: each interval uses the latest
// possible start (appointed_before is a not-later-than bound) and the
// earliest possible end, so imprecise dates never inflate a match. A role
// with no start information at all cannot establish concurrency.
func tenuresOverlap(a, b Role) bool {
	startA, okA := latestStart(a)
	startB, okB := latestStart(b)
	if !okA || !okB {
		return false
	}
	endA, openA := earliestEnd(a)
	endB, openB := earliestEnd(b)
	if !openA && startB.After(endA) {
		return false
	}
	if !openB && startA.After(endB) {
		return false
	}
	return true
}

func latestStart(r Role) (time.Time, bool) {
	if r.AppointedOn.Known() {
		return r.AppointedOn.Latest(), true
	}
	if r.AppointedBefore.Known() {
		return r.AppointedBefore.Latest(), true
	}
	return time.Time{}, false
}

// earliestEnd returns the tenure end, open=true when the officer is
// presumed still active (no resignation on file).
func earliestEnd(r Role) (time.Time, bool) {
	if r.ResignedOn.Known() {
		return r.ResignedOn.Earliest(), false
	}
	return time.Time{}, true
}

// multipleRoleCompanies lists company numbers where the officer holds more
// than one role, in first-seen order.
func multipleRoleCompanies(o Officer) []string {
	counts := make(map[string]int)
	var order []string
	for _, r := range o.Roles {
		if r.CompanyNumber == "" {
			continue
		}
		if counts[r.CompanyNumber] == 0 {
			order = append(order, r.CompanyNumber)
		}
		counts[r.CompanyNumber]++
	}
	var multiple []string
	for _, company := range order {
		if counts[company] > 1 {
			multiple = append(multiple, company)
		}
	}
	return multiple
}
