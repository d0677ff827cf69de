package health

import (
	"testing"

	"pet-health-record/internal/domain/records"
)

func TestAlerts_SeverityBoundaries(t *testing.T) {
	ix := NewPetIndex(testPets(t))

	tests := []struct {
		name string
		due  string
		days int
		want Severity
	}{
		{"today", "2024-06-10", 0, SeverityHigh},
		{"exactly 7 days", "2024-06-17", 7, SeverityHigh},
		{"exactly 8 days", "2024-06-18", 8, SeverityMedium},
		{"exactly 14 days", "2024-06-24", 14, SeverityMedium},
		{"15 days", "2024-06-25", 15, SeverityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Alerts(ix, []records.Vaccination{
				{ID: "v1", PetID: "pet-1", VaccineName: "Rabies", NextDueDate: datep(t, tt.due)},
			}, nil, 30, testNow)
			if len(got) != 1 {
				t.Fatalf("expected 1 alert, got %d", len(got))
			}
			if got[0].DaysRemaining != tt.days {
				t.Errorf("days remaining = %d, want %d", got[0].DaysRemaining, tt.days)
			}
			if got[0].Severity != tt.want {
				t.Errorf("severity = %s, want %s", got[0].Severity, tt.want)
			}
		})
	}
}

func TestAlerts_TreatmentsHaveNoLowTier(t *testing.T) {
	ix := NewPetIndex(testPets(t))
	got := Alerts(ix, nil, []records.Treatment{
		{ID: "t1", PetID: "pet-2", Name: "Physio", NextAppointmentDate: datep(t, "2024-07-05")},
	}, 30, testNow)
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(got))
	}
	if got[0].Severity != SeverityMedium {
		t.Fatalf("expected medium for a treatment 25 days out, got %s", got[0].Severity)
	}
	if got[0].ActionURL != "/pets/pet-2/treatments" {
		t.Fatalf("unexpected action url %s", got[0].ActionURL)
	}
}

func TestAlerts_WindowAndOrdering(t *testing.T) {
	ix := NewPetIndex(testPets(t))
	vaccs := []records.Vaccination{
		{ID: "past", PetID: "pet-1", VaccineName: "A", NextDueDate: datep(t, "2024-06-09")},
		{ID: "far", PetID: "pet-1", VaccineName: "B", NextDueDate: datep(t, "2024-07-11")},
		{ID: "late", PetID: "pet-1", VaccineName: "C", NextDueDate: datep(t, "2024-07-10")},
		{ID: "none", PetID: "pet-1", VaccineName: "D"},
		{ID: "soon", PetID: "pet-2", VaccineName: "E", NextDueDate: datep(t, "2024-06-11")},
		{ID: "ghost", PetID: "nobody", VaccineName: "F", NextDueDate: datep(t, "2024-06-11")},
	}
	treats := []records.Treatment{
		{ID: "t1", PetID: "pet-1", Name: "Check", NextAppointmentDate: datep(t, "2024-06-12")},
	}

	got := Alerts(ix, vaccs, treats, 30, testNow)
	want := []string{"vaccination-soon", "treatment-t1", "vaccination-late"}
	if len(got) != len(want) {
		t.Fatalf("expected %d alerts, got %#v", len(want), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if got[0].Description != "Luna's E vaccination is due tomorrow" {
		t.Fatalf("unexpected description %q", got[0].Description)
	}
}

func TestAlerts_NoPets(t *testing.T) {
	got := Alerts(NewPetIndex(nil), []records.Vaccination{
		{ID: "v1", PetID: "pet-1", NextDueDate: datep(t, "2024-06-11")},
	}, nil, 30, testNow)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
}
