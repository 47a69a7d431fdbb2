package vaccinations

import (
	"testing"
	"time"
)

func TestVaccination_IsOverdue_NilNextDueNeverOverdue(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

	v := Vaccination{Name: "Rabia"}
	if v.IsOverdue(now) {
		t.Fatalf("vaccination without next due date must never be overdue")
	}
}

func TestVaccination_IsOverdue(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	v := Vaccination{NextDueDate: &past}
	if !v.IsOverdue(now) {
		t.Fatalf("expected overdue when next due date already passed")
	}

	future := now.Add(time.Hour)
	v = Vaccination{NextDueDate: &future}
	if v.IsOverdue(now) {
		t.Fatalf("expected not overdue when next due date is ahead")
	}

	// exactamente en la fecha todavía no está vencida
	v = Vaccination{NextDueDate: &now}
	if v.IsOverdue(now) {
		t.Fatalf("expected not overdue exactly at due date")
	}
}

func TestVaccination_DaysUntilDue(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

	v := Vaccination{}
	if v.DaysUntilDue(now) != nil {
		t.Fatalf("expected nil days without next due date")
	}

	due := now.Add(10 * 24 * time.Hour)
	v = Vaccination{NextDueDate: &due}
	if got := v.DaysUntilDue(now); got == nil || *got != 10 {
		t.Fatalf("DaysUntilDue = %v, want 10", got)
	}

	overdue := now.Add(-3 * 24 * time.Hour)
	v = Vaccination{NextDueDate: &overdue}
	if got := v.DaysUntilDue(now); got == nil || *got != -3 {
		t.Fatalf("DaysUntilDue = %v, want -3", got)
	}
}
