package invoice

import (
	"testing"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

func person(first, last string) models.Person {
	return models.Person{FirstName: first, LastName: last}
}

// TestSnapshotRoster_Order verifies the fixed role order: coaches, then
// athletes, then reservists, then chaperones.
func TestSnapshotRoster_Order(t *testing.T) {
	r := &models.Roster{
		TeamID:     "t1",
		Chaperones: []models.Person{person("Cha", "One")},
		Athletes:   []models.Person{person("Ath", "One"), person("Ath", "Two")},
		Coaches:    []models.Person{person("Coa", "One")},
		Reservists: []models.Person{person("Res", "One")},
	}

	got := SnapshotRoster(r)
	wantRoles := []models.Role{
		models.RoleCoach,
		models.RoleAthlete, models.RoleAthlete,
		models.RoleReservist,
		models.RoleChaperone,
	}
	if len(got) != len(wantRoles) {
		t.Fatalf("got %d members, want %d", len(got), len(wantRoles))
	}
	for i, m := range got {
		if m.Role != wantRoles[i] {
			t.Errorf("member %d: role %s, want %s", i, m.Role, wantRoles[i])
		}
	}
	if got[0].Name() != "Coa One" {
		t.Errorf("first member = %q, want coach first", got[0].Name())
	}
}

func TestSnapshotRoster_Nil(t *testing.T) {
	got := SnapshotRoster(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("nil roster: got %v, want empty non-nil slice", got)
	}
}

// TestSynthesizeAthletes covers the legacy fallback: a head count becomes
// placeholder members "Athlete 1..n" so counting logic stays uniform.
func TestSynthesizeAthletes(t *testing.T) {
	got := SynthesizeAthletes(3)
	if len(got) != 3 {
		t.Fatalf("got %d members, want 3", len(got))
	}
	for i, m := range got {
		wantName := "Athlete " + string(rune('1'+i))
		if m.Name() != wantName {
			t.Errorf("member %d name = %q, want %q", i, m.Name(), wantName)
		}
		if m.Role != models.RoleAthlete {
			t.Errorf("member %d role = %s, want athlete", i, m.Role)
		}
	}

	if got := SynthesizeAthletes(0); len(got) != 0 {
		t.Errorf("count 0: got %d members, want 0", len(got))
	}
	if got := SynthesizeAthletes(-2); len(got) != 0 {
		t.Errorf("negative count: got %d members, want 0", len(got))
	}
}
