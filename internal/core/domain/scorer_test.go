package domain

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	scorer, err := NewScorer(DefaultScoringConfig())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	return scorer
}

// The worked example: two directors of GREGORY DISTRIBUTION LIMITED with a
// generational age gap, shared surname, overlapping tenure at the same
// company, and identical addresses.
func gregoryPair() (RawOfficer, RawOfficer) {
	william := RawOfficer{
		FullName:    "William John Gregory",
		MiddleNames: []string{"John"},
		DateOfBirth: "1924-10",
		CompanyName: "GREGORY DISTRIBUTION LIMITED",
		Address:     &RawAddress{FullAddress: "Gregory House, North Lawn, Clyst Honiton, Exeter"},
		Roles: []RawRole{
			{CompanyNumber: "01329163", RoleType: "director", AppointedOn: "1980-05-01", ResignedOn: "2010-07-29"},
		},
	}
	john := RawOfficer{
		FullName:    "John Kennedy Gregory",
		MiddleNames: []string{"Kennedy"},
		DateOfBirth: "1958-03",
		CompanyName: "GREGORY DISTRIBUTION LIMITED",
		Address:     &RawAddress{FullAddress: "Gregory House, North Lawn, Clyst Honiton, Exeter"},
		Roles: []RawRole{
			{CompanyNumber: "01329163", RoleType: "director", AppointedOn: "1990-03-15"},
		},
	}
	return william, john
}

func TestScore_WorkedExample(t *testing.T) {
	scorer := newTestScorer(t)
	cfg := scorer.Config()
	william, john := gregoryPair()

	score, err := scorer.Score(william, john)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	want := cfg.SurnameMatchPoints + // GREGORY ~ GREGORY
		cfg.GenerationalPoints + // 33.4 year gap
		cfg.ConcurrentServicePoints + // overlapping tenure at 01329163
		cfg.ExactAddressPoints +
		2*cfg.CompanyNamePoints // surname in company name, both directions

	if score.TotalScore != want {
		t.Errorf("total = %f, want %f (reasons: %v)", score.TotalScore, want, score.Reasons)
	}
	if score.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want high", score.Confidence)
	}

	expectFragments := []string{
		"Surname match",
		"parent-child",
		"Concurrent service at company 01329163",
		"Exact address match",
		"Surname GREGORY",
	}
	for _, fragment := range expectFragments {
		found := false
		for _, reason := range score.Reasons {
			if strings.Contains(reason, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no reason mentioning %q in %v", fragment, score.Reasons)
		}
	}

	// The age gap must not also read as sibling-range.
	for _, reason := range score.Reasons {
		if strings.Contains(reason, "sibling") {
			t.Errorf("unexpected sibling reason: %s", reason)
		}
	}
}

func TestScore_NegativeScenario(t *testing.T) {
	scorer := newTestScorer(t)

	score, err := scorer.Score(
		RawOfficer{FullName: "Alice Thornton"},
		RawOfficer{FullName: "Robert Mayfield"},
	)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if score.TotalScore != 0 {
		t.Errorf("total = %f, want 0", score.TotalScore)
	}
	if len(score.Reasons) != 0 {
		t.Errorf("reasons = %v, want none", score.Reasons)
	}
	if score.Confidence != ConfidenceLow {
		t.Errorf("confidence = %s, want low", score.Confidence)
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := newTestScorer(t)
	william, john := gregoryPair()

	first, err := scorer.Score(william, john)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := scorer.Score(william, john)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %+v vs %+v", i, first, again)
		}
	}
}

func TestScore_Symmetric(t *testing.T) {
	scorer := newTestScorer(t)
	william, john := gregoryPair()

	ab, err := scorer.Score(william, john)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	ba, err := scorer.Score(john, william)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if ab.TotalScore != ba.TotalScore {
		t.Errorf("asymmetric totals: %f vs %f", ab.TotalScore, ba.TotalScore)
	}

	// Reason order may differ between directions, the set must not.
	sortedA := append([]string(nil), ab.Reasons...)
	sortedB := append([]string(nil), ba.Reasons...)
	sort.Strings(sortedA)
	sort.Strings(sortedB)
	if !reflect.DeepEqual(sortedA, sortedB) {
		t.Errorf("reason sets differ:\n%v\n%v", sortedA, sortedB)
	}
}

func TestScore_MiddleNameMonotonicity(t *testing.T) {
	scorer := newTestScorer(t)
	william, john := gregoryPair()

	base, err := scorer.Score(william, john)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	william.MiddleNames = append(william.MiddleNames, "Kennedy")
	withShared, err := scorer.Score(william, john)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if withShared.TotalScore <= base.TotalScore {
		t.Errorf("adding a shared middle name must strictly increase the score: %f vs %f",
			withShared.TotalScore, base.TotalScore)
	}
}

func TestScore_DegradationInvariance(t *testing.T) {
	scorer := newTestScorer(t)

	// A carries no DOB and no coordinates; whether B has them must not
	// change the total, because the age and proximity signals need both.
	bare := RawOfficer{FullName: "Alice Thornton", Surname: "Thornton"}
	rich := RawOfficer{
		FullName:    "Robert Mayfield",
		DateOfBirth: "1960-04-02",
		Address:     &RawAddress{FullAddress: "3 Elm Grove"},
	}
	lat, lon := 51.5, -0.12
	rich.Address.Latitude = &lat
	rich.Address.Longitude = &lon
	poor := RawOfficer{FullName: "Robert Mayfield"}

	withData, err := scorer.Score(bare, rich)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	withoutData, err := scorer.Score(bare, poor)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if withData.TotalScore != withoutData.TotalScore {
		t.Errorf("degradation must be silent: %f vs %f", withData.TotalScore, withoutData.TotalScore)
	}
}

func TestScore_MalformedRecord(t *testing.T) {
	scorer := newTestScorer(t)

	_, err := scorer.Score(RawOfficer{}, RawOfficer{FullName: "Robert Mayfield"})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestScore_ClampToMaxScore(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.MaxScore = 100
	scorer, err := NewScorer(cfg)
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}

	william, john := gregoryPair()
	score, err := scorer.Score(william, john)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score.TotalScore != 100 {
		t.Errorf("clamped total = %f, want 100", score.TotalScore)
	}
}

func TestScoreGroup(t *testing.T) {
	scorer := newTestScorer(t)
	william, john := gregoryPair()

	records := []RawOfficer{
		william,
		john,
		{FullName: "Alice Thornton"},
		{}, // malformed: skipped, fails only its own pairs
	}

	scores := scorer.ScoreGroup(records)
	if len(scores) != 3 { // C(3,2) among the valid records
		t.Fatalf("expected 3 pair scores, got %d", len(scores))
	}

	var high int
	for _, s := range scores {
		if s.Confidence == ConfidenceHigh {
			high++
		}
	}
	if high != 1 {
		t.Errorf("expected exactly 1 high-confidence pair, got %d", high)
	}
}

func TestScoreGroup_Concurrent(t *testing.T) {
	scorer := newTestScorer(t)
	william, john := gregoryPair()

	baseline, err := scorer.Score(william, john)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	done := make(chan ConnectionScore, 8)
	for i := 0; i < 8; i++ {
		go func() {
			s, _ := scorer.Score(william, john)
			done <- s
		}()
	}
	for i := 0; i < 8; i++ {
		if s := <-done; s.TotalScore != baseline.TotalScore {
			t.Errorf("concurrent run diverged: %f vs %f", s.TotalScore, baseline.TotalScore)
		}
	}
}
