package health

import (
	"testing"
	"time"

	"pet-health-record/internal/domain/records"
)

func todayAt(h, m int) *time.Time {
	t := time.Date(2024, 6, 10, h, m, 0, 0, time.UTC)
	return &t
}

func TestTimeUrgency(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want Urgency
	}{
		{"past", testNow.Add(-time.Minute), UrgencyCritical},
		{"in one hour", testNow.Add(time.Hour), UrgencyCritical},
		{"in three hours", testNow.Add(3 * time.Hour), UrgencyHigh},
		{"exactly four hours", testNow.Add(4 * time.Hour), UrgencyMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeUrgency(tt.at, testNow); got != tt.want {
				t.Errorf("TimeUrgency() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDailyPriorities_OrderAndSources(t *testing.T) {
	ix := NewPetIndex(testPets(t))

	treatments := []records.Treatment{
		{ID: "t1", PetID: "pet-1", Name: "Apoquel", IsActive: true, NextDoseDate: todayAt(10, 0)},
		{ID: "t2", PetID: "pet-1", Name: "Fish oil", IsActive: true, NextDoseDate: todayAt(12, 0)},
		{ID: "t3", PetID: "pet-2", Name: "Probiotic", IsActive: true, NextDoseDate: todayAt(18, 0)},
		{ID: "t4", PetID: "pet-2", Name: "Insulin", IsActive: true, NextDoseDate: todayAt(8, 0), Dosage: "2 IU"},
		{ID: "t5", PetID: "pet-2", Name: "Stopped", IsActive: false, NextDoseDate: todayAt(11, 0)},
		{ID: "t6", PetID: "pet-2", Name: "Tomorrow", IsActive: true, NextDoseDate: datep(t, "2024-06-11")},
	}
	visits := []records.MedicalVisit{
		{ID: "m1", PetID: "pet-1", VisitDate: datep(t, "2024-06-10"), ClinicName: "Happy Paws"},
		{ID: "m2", PetID: "pet-1", VisitDate: datep(t, "2024-06-12")},
	}
	vaccs := []records.Vaccination{
		{ID: "vt", PetID: "pet-1", VaccineName: "Rabies", NextDueDate: datep(t, "2024-06-10")},
		{ID: "vm", PetID: "pet-2", VaccineName: "FVRCP", NextDueDate: datep(t, "2024-06-11")},
		{ID: "vx", PetID: "pet-2", VaccineName: "Lepto", NextDueDate: datep(t, "2024-06-14")},
	}

	got := DailyPriorities(ix, vaccs, treatments, visits, testNow)

	want := []struct {
		id      string
		urgency Urgency
	}{
		{"appointment-m1", UrgencyCritical},
		{"alert-vaccination-vt", UrgencyCritical},
		{"medication-t4", UrgencyCritical},
		{"medication-t1", UrgencyCritical},
		{"alert-vaccination-vm", UrgencyCritical},
		{"medication-t2", UrgencyHigh},
		{"medication-t3", UrgencyMedium},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d priorities, got %d: %#v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Urgency != w.urgency {
			t.Fatalf("position %d: expected %s/%s, got %s/%s", i, w.id, w.urgency, got[i].ID, got[i].Urgency)
		}
	}
	if got[2].Description != "Luna's Insulin dose (2 IU)" {
		t.Fatalf("unexpected description %q", got[2].Description)
	}
}

func TestSortPriorities_UntimedKeepRelativeOrder(t *testing.T) {
	items := []Priority{
		{ID: "A", Urgency: UrgencyCritical, DueTime: todayAt(10, 0)},
		{ID: "X", Urgency: UrgencyCritical},
		{ID: "Y", Urgency: UrgencyMedium},
		{ID: "B", Urgency: UrgencyCritical, DueTime: todayAt(9, 0)},
		{ID: "C", Urgency: UrgencyHigh},
	}
	sortPriorities(items)

	want := []string{"B", "X", "A", "C", "Y"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
	}
}

func TestDailyPriorities_NoPets(t *testing.T) {
	got := DailyPriorities(NewPetIndex(nil), nil, nil, nil, testNow)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
}

func TestDailyPriorities_DateOnlyVersusTimestamp(t *testing.T) {
	ix := NewPetIndex(testPets(t))
	edt := time.FixedZone("EDT", -4*3600)
	now := time.Date(2024, 6, 10, 21, 0, 0, 0, edt)

	// 20:00 en Nueva York es medianoche UTC del 11: sigue siendo hoy.
	evening := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	treatments := []records.Treatment{
		{ID: "t1", PetID: "pet-1", Name: "Apoquel", IsActive: true, NextDoseDate: &evening},
		{ID: "t2", PetID: "pet-2", Name: "Deworm", IsActive: true, NextDoseDate: datep(t, "2024-06-11"), NextDoseDateOnly: true},
	}
	visits := []records.MedicalVisit{
		{ID: "m1", PetID: "pet-1", VisitDate: datep(t, "2024-06-10"), VisitDateOnly: true},
		{ID: "m2", PetID: "pet-2", VisitDate: datep(t, "2024-06-11"), VisitDateOnly: true},
	}

	got := DailyPriorities(ix, nil, treatments, visits, now)

	ids := map[string]bool{}
	for _, p := range got {
		ids[p.ID] = true
	}
	if len(got) != 2 || !ids["medication-t1"] || !ids["appointment-m1"] {
		t.Fatalf("expected the evening dose and today's visit, got %#v", got)
	}
}

func TestIsToday(t *testing.T) {
	edt := time.FixedZone("EDT", -4*3600)
	now := time.Date(2024, 6, 10, 21, 0, 0, 0, edt)
	midnightUTC := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	if !isToday(midnightUTC, false, now) {
		t.Errorf("timestamp at 00:00Z is 20:00 local and should be today")
	}
	if isToday(midnightUTC, true, now) {
		t.Errorf("date-only 2024-06-11 should not be today")
	}
	if !isToday(date(t, "2024-06-10"), true, now) {
		t.Errorf("date-only 2024-06-10 should be today")
	}
}
