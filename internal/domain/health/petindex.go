package health

import "pet-health-record/internal/domain/records"

const (
	UnknownPetName     = "Unknown Pet"
	SecondaryTextColor = "#6B7280"
)

var petPalette = []string{
	"#4F46E5",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#8B5CF6",
	"#EC4899",
	"#06B6D4",
	"#84CC16",
}

type PetInfo struct {
	Name     string
	Color    string
	PhotoURL string
}

// PetIndex asocia pet id -> nombre/color. El color depende del orden de
// entrada: reordenar la lista cambia los colores.
type PetIndex struct {
	byID map[string]PetInfo
}

func NewPetIndex(pets []records.Pet) PetIndex {
	ix := PetIndex{byID: make(map[string]PetInfo, len(pets))}
	for i, p := range pets {
		ix.byID[p.ID] = PetInfo{
			Name:     p.Name,
			Color:    petPalette[i%len(petPalette)],
			PhotoURL: p.PhotoURL,
		}
	}
	return ix
}

func (ix PetIndex) Lookup(petID string) (PetInfo, bool) {
	info, ok := ix.byID[petID]
	return info, ok
}

// Name devuelve "Unknown Pet" si el id no está en el índice.
func (ix PetIndex) Name(petID string) string {
	if info, ok := ix.byID[petID]; ok {
		return info.Name
	}
	return UnknownPetName
}

func (ix PetIndex) Color(petID string) string {
	if info, ok := ix.byID[petID]; ok {
		return info.Color
	}
	return SecondaryTextColor
}

func (ix PetIndex) Len() int { return len(ix.byID) }
