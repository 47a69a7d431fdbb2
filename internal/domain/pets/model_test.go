package pets

import (
	"testing"
	"time"
)

func TestParseSpecies_UnknownFallsBackToOther(t *testing.T) {
	cases := map[string]Species{
		"dog":     SpeciesDog,
		"cat":     SpeciesCat,
		"bird":    SpeciesBird,
		"rabbit":  SpeciesRabbit,
		"fish":    SpeciesFish,
		"other":   SpeciesOther,
		"hamster": SpeciesOther,
		"":        SpeciesOther,
		"DOG":     SpeciesOther, // case sensitive a propósito, igual que el wire
		"tortuga": SpeciesOther,
	}

	for in, want := range cases {
		if got := ParseSpecies(in); got != want {
			t.Errorf("ParseSpecies(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestPet_Age_CompletedYearsOnly(t *testing.T) {
	birth := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	p := Pet{BirthDate: birth}

	// un día antes del cumpleaños todavía no cumplió
	if got := p.Age(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)); got != 1 {
		t.Fatalf("Age day before birthday = %d, want 1", got)
	}
	if got := p.Age(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)); got != 2 {
		t.Fatalf("Age on birthday = %d, want 2", got)
	}
}

func TestPet_Age_BirthInFutureIsZero(t *testing.T) {
	p := Pet{BirthDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	if got := p.Age(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Fatalf("Age with future birth = %d, want 0", got)
	}
}

func TestPet_AgeInMonths(t *testing.T) {
	birth := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	p := Pet{BirthDate: birth}

	// el 28 de febrero aún no pasó un mes calendario completo
	if got := p.AgeInMonths(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Fatalf("AgeInMonths = %d, want 0", got)
	}
	if got := p.AgeInMonths(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)); got != 2 {
		t.Fatalf("AgeInMonths = %d, want 2", got)
	}
}
