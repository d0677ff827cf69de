package memory

import (
	"time"

	"pet-health-record/internal/domain/records"
)

// SeedDemo carga dos mascotas con historia relativa a now para que el
// dashboard tenga algo que mostrar en modo dev (sin DB ni BaaS).
func SeedDemo(s *Store, userID string, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		t := today.AddDate(0, 0, offset)
		return &t
	}
	at := func(offset int, hour int) *time.Time {
		t := today.AddDate(0, 0, offset).Add(time.Duration(hour) * time.Hour)
		return &t
	}

	milo, err := s.AddPet(records.Pet{
		OwnerUserID: userID,
		Name:        "Milo",
		Species:     "dog",
		DateOfBirth: day(-4*365 + 20),
		CreatedAt:   today.AddDate(-1, 0, 0),
	})
	if err != nil {
		return err
	}
	luna, err := s.AddPet(records.Pet{
		OwnerUserID: userID,
		Name:        "Luna",
		Species:     "cat",
		CreatedAt:   today.AddDate(-1, 0, 1),
	})
	if err != nil {
		return err
	}

	s.AddVaccination(records.Vaccination{PetID: milo, VaccineName: "Rabies", DateGiven: day(-365), NextDueDate: day(-2)})
	s.AddVaccination(records.Vaccination{PetID: milo, VaccineName: "DHPP", DateGiven: day(-340), NextDueDate: day(12)})
	s.AddVaccination(records.Vaccination{PetID: luna, VaccineName: "FVRCP", DateGiven: day(-30), NextDueDate: day(335)})

	s.AddTreatment(records.Treatment{
		PetID: milo, Name: "Apoquel", Category: records.CategoryMedication, IsActive: true,
		StartDate: day(-10), EndDate: day(20), NextDoseDate: at(0, 18), Dosage: "16 mg",
	})
	s.AddTreatment(records.Treatment{
		PetID: luna, Name: "Physiotherapy", Category: "Therapy", IsActive: true,
		StartDate: day(-5), NextAppointmentDate: day(3),
	})

	s.AddMedicalVisit(records.MedicalVisit{PetID: milo, VisitDate: day(-400), VisitDateOnly: true, Reason: "Annual checkup", ClinicName: "Happy Paws"})
	s.AddMedicalVisit(records.MedicalVisit{PetID: luna, VisitDate: day(-20), VisitDateOnly: true, Reason: "Limping", ClinicName: "Happy Paws"})

	s.AddWeightEntry(records.WeightEntry{PetID: milo, Weight: 20.0, Unit: "kg", DateRecorded: day(-60)})
	s.AddWeightEntry(records.WeightEntry{PetID: milo, Weight: 22.5, Unit: "kg", DateRecorded: day(-3)})

	s.AddDocument(records.Document{PetID: luna, FileName: "xray.pdf", Type: "xray", CreatedAt: today.AddDate(0, 0, -19)})

	s.AddEvent(records.Event{UserID: userID, PetID: luna, Type: "grooming", Title: "Grooming", StartTime: at(5, 10)})
	s.AddEvent(records.Event{UserID: userID, Type: "other", Title: "Buy food", StartTime: day(2)})

	return nil
}
