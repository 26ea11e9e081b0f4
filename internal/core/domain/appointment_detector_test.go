package domain

import (
	"strings"
	"testing"
)

func officerWithRoles(t *testing.T, name string, roles ...RawRole) Officer {
	t.Helper()
	return mustNormalize(t, RawOfficer{FullName: name, Roles: roles})
}

func TestAppointmentDetector_ConcurrentService(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	a := officerWithRoles(t, "William Gregory",
		RawRole{CompanyNumber: "01329163", RoleType: "director", AppointedOn: "1980-05-01", ResignedOn: "2010-07-29"})
	b := officerWithRoles(t, "John Gregory",
		RawRole{CompanyNumber: "01329163", RoleType: "director", AppointedOn: "1990-03-15"})

	result := detector.Detect(a, b)
	if result.Points != cfg.ConcurrentServicePoints {
		t.Errorf("points = %f, want %f", result.Points, cfg.ConcurrentServicePoints)
	}
	if len(result.Reasons) != 1 || !strings.Contains(result.Reasons[0], "Concurrent service") {
		t.Errorf("unexpected reasons: %v", result.Reasons)
	}
}

func TestAppointmentDetector_HistoricalSharedCompany(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	// Tenures at the same company that never overlapped.
	a := officerWithRoles(t, "A Person",
		RawRole{CompanyNumber: "555", AppointedOn: "1990-01-10", ResignedOn: "1995-02-20"})
	b := officerWithRoles(t, "B Person",
		RawRole{CompanyNumber: "555", AppointedOn: "2000-06-01"})

	result := detector.Detect(a, b)
	if result.Points != cfg.HistoricalSharedPoints {
		t.Errorf("points = %f, want %f", result.Points, cfg.HistoricalSharedPoints)
	}
	if len(result.Reasons) != 1 || !strings.Contains(result.Reasons[0], "Historical shared company") {
		t.Errorf("unexpected reasons: %v", result.Reasons)
	}
}

func TestAppointmentDetector_NoSharedCompany(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	a := officerWithRoles(t, "A Person", RawRole{CompanyNumber: "111", AppointedOn: "1990-01-10"})
	b := officerWithRoles(t, "B Person", RawRole{CompanyNumber: "222", AppointedOn: "1991-05-05"})

	result := detector.Detect(a, b)
	if result.Points != 0 || len(result.Reasons) != 0 {
		t.Errorf("unrelated companies should not score, got %+v", result)
	}
}

func TestAppointmentDetector_AppointedBeforeIsConservative(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	// A was appointed no later than 2005-06; the true date may be earlier,
	// but overlap math must use the bound, so concurrency with B (active
	// since 2010) still holds only because both tenures remain open.
	a := officerWithRoles(t, "A Person",
		RawRole{CompanyNumber: "777", AppointedBefore: "2005-06-01"})
	b := officerWithRoles(t, "B Person",
		RawRole{CompanyNumber: "777", AppointedOn: "2010-01-01"})

	result := detector.Detect(a, b)
	if result.Points != cfg.ConcurrentServicePoints {
		t.Errorf("points = %f, want concurrent service award %f", result.Points, cfg.ConcurrentServicePoints)
	}

	// With B resigned before A's latest possible start, the bound cannot
	// prove overlap: only the historical award applies.
	c := officerWithRoles(t, "C Person",
		RawRole{CompanyNumber: "777", AppointedOn: "2000-01-01", ResignedOn: "2003-01-01"})
	result = detector.Detect(a, c)
	if result.Points != cfg.HistoricalSharedPoints {
		t.Errorf("points = %f, want historical award %f", result.Points, cfg.HistoricalSharedPoints)
	}
}

func TestAppointmentDetector_UnknownStartCannotBeConcurrent(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	a := officerWithRoles(t, "A Person", RawRole{CompanyNumber: "888"})
	b := officerWithRoles(t, "B Person", RawRole{CompanyNumber: "888", AppointedOn: "2010-01-01"})

	result := detector.Detect(a, b)
	if result.Points != cfg.HistoricalSharedPoints {
		t.Errorf("roles without start information must fall back to the historical award, got %f", result.Points)
	}
}

func TestAppointmentDetector_SynchronizedTiming(t *testing.T) {
	cfg := DefaultScoringConfig() // zero tolerance: same calendar month
	detector := NewAppointmentDetector(&cfg)

	// Different companies; only the timing check can fire.
	a := officerWithRoles(t, "A Person",
		RawRole{CompanyNumber: "111", AppointedOn: "2010-07-02", ResignedOn: "2015-03-01"})
	b := officerWithRoles(t, "B Person",
		RawRole{CompanyNumber: "222", AppointedOn: "2010-07-29", ResignedOn: "2015-03-20"})

	result := detector.Detect(a, b)
	want := 2 * cfg.SyncTimingPoints // appointment pair + resignation pair
	if result.Points != want {
		t.Errorf("points = %f, want %f", result.Points, want)
	}
	if len(result.Reasons) != 2 {
		t.Fatalf("expected 2 reasons, got %v", result.Reasons)
	}
	if !strings.Contains(result.Reasons[0], "Synchronized appointment timing") {
		t.Errorf("unexpected first reason: %s", result.Reasons[0])
	}
	if !strings.Contains(result.Reasons[1], "Synchronized resignation timing") {
		t.Errorf("unexpected second reason: %s", result.Reasons[1])
	}
}

func TestAppointmentDetector_DayToleranceWindow(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.SyncToleranceDays = 7
	detector := NewAppointmentDetector(&cfg)

	tests := []struct {
		name       string
		a, b       string
		wantPoints float64
	}{
		{name: "within window across month boundary", a: "2010-07-29", b: "2010-08-02", wantPoints: cfg.SyncTimingPoints},
		{name: "outside window", a: "2010-07-01", b: "2010-07-20", wantPoints: 0},
		{name: "month precision cannot satisfy day tolerance", a: "2010-07", b: "2010-07", wantPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := officerWithRoles(t, "A Person", RawRole{CompanyNumber: "111", AppointedOn: tt.a})
			b := officerWithRoles(t, "B Person", RawRole{CompanyNumber: "222", AppointedOn: tt.b})

			result := detector.Detect(a, b)
			if result.Points != tt.wantPoints {
				t.Errorf("points = %f, want %f", result.Points, tt.wantPoints)
			}
		})
	}
}

func TestAppointmentDetector_BoundNeverClaimsSynchronization(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	// appointed_before in the same month as the other officer's exact
	// appointment date must not count as synchronized timing.
	a := officerWithRoles(t, "A Person", RawRole{CompanyNumber: "111", AppointedBefore: "2010-07-15"})
	b := officerWithRoles(t, "B Person", RawRole{CompanyNumber: "222", AppointedOn: "2010-07-02"})

	result := detector.Detect(a, b)
	if result.Points != 0 {
		t.Errorf("appointed_before must not claim synchronization, got %f points (%v)", result.Points, result.Reasons)
	}
}

func TestAppointmentDetector_MultipleRolesContextualNote(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	a := officerWithRoles(t, "A Person",
		RawRole{CompanyNumber: "999", RoleType: "director", AppointedOn: "2000-01-01"},
		RawRole{CompanyNumber: "999", RoleType: "secretary", AppointedOn: "2001-01-01"})
	b := officerWithRoles(t, "B Person",
		RawRole{CompanyNumber: "999", RoleType: "director", AppointedOn: "2005-01-01"})

	result := detector.Detect(a, b)

	var noted bool
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "multiple roles at company 999") {
			noted = true
		}
	}
	if !noted {
		t.Errorf("expected a multiple-roles note, got %v", result.Reasons)
	}

	// The note itself must not add points: two concurrent role pairs only.
	if result.Points != 2*cfg.ConcurrentServicePoints {
		t.Errorf("points = %f, want %f", result.Points, 2*cfg.ConcurrentServicePoints)
	}
}

func TestAppointmentDetector_SymmetricScore(t *testing.T) {
	cfg := DefaultScoringConfig()
	detector := NewAppointmentDetector(&cfg)

	a := officerWithRoles(t, "A Person",
		RawRole{CompanyNumber: "01329163", AppointedOn: "1980-05-01", ResignedOn: "2010-07-29"},
		RawRole{CompanyNumber: "444", AppointedOn: "1992-02-10"})
	b := officerWithRoles(t, "B Person",
		RawRole{CompanyNumber: "01329163", AppointedOn: "1990-03-15"})

	ab := detector.Detect(a, b)
	ba := detector.Detect(b, a)
	if ab.Points != ba.Points {
		t.Errorf("asymmetric points: %f vs %f", ab.Points, ba.Points)
	}
	if len(ab.Reasons) != len(ba.Reasons) {
		t.Errorf("asymmetric reason counts: %v vs %v", ab.Reasons, ba.Reasons)
	}
}
