package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, fish, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesFish   Species = "fish"
	SpeciesOther  Species = "other"
)

// ParseSpecies es tolerante: un valor desconocido cae en "other"
// en vez de fallar (datos viejos o de otro cliente no deben romper nada).
func ParseSpecies(s string) Species {
	switch Species(s) {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesFish:
		return Species(s)
	default:
		return SpeciesOther
	}
}

// Pet representa el perfil de una mascota junto con los datos de su dueño.
// Los campos opcionales usan omitempty para que un snapshot persistido
// no guarde nulls como strings.
type Pet struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Species Species `json:"species"`
	Breed   string  `json:"breed"`

	BirthDate time.Time `json:"birthDate"`
	Weight    float64   `json:"weight"` // kg, > 0
	Color     string    `json:"color"`

	MicrochipNumber string `json:"microchipNumber,omitempty"`
	PhotoURL        string `json:"photoUrl,omitempty"`
	ImageData       []byte `json:"imageData,omitempty"`

	OwnerName  string `json:"ownerName"`
	OwnerPhone string `json:"ownerPhone"`
	OwnerEmail string `json:"ownerEmail"`

	CreatedAt time.Time `json:"createdAt"`
}

// Age es la edad en años cumplidos al instante now.
// Se calcula al leer, nunca se guarda.
func (p Pet) Age(now time.Time) int {
	return yearsBetween(p.BirthDate, now)
}

// AgeInMonths es la edad en meses cumplidos al instante now.
func (p Pet) AgeInMonths(now time.Time) int {
	return monthsBetween(p.BirthDate, now)
}

func yearsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	y := to.Year() - from.Year()
	if from.AddDate(y, 0, 0).After(to) {
		y--
	}
	return y
}

func monthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	m := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if from.AddDate(0, m, 0).After(to) {
		m--
	}
	return m
}
