package invoice

import (
	"strconv"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

// SnapshotRoster copies a live roster into immutable member records, in the
// fixed role order: coaches, athletes, reservists, chaperones. A nil roster
// yields an empty list.
func SnapshotRoster(r *models.Roster) []models.RegisteredMember {
	if r == nil {
		return []models.RegisteredMember{}
	}
	out := make([]models.RegisteredMember, 0,
		len(r.Coaches)+len(r.Athletes)+len(r.Reservists)+len(r.Chaperones))
	for _, role := range models.RoleOrder {
		for _, p := range bucket(r, role) {
			out = append(out, models.RegisteredMember{
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Gender:    p.Gender,
				Role:      role,
				DOB:       p.DOB,
				Email:     p.Email,
				Phone:     p.Phone,
			})
		}
	}
	return out
}

func bucket(r *models.Roster, role models.Role) []models.Person {
	switch role {
	case models.RoleCoach:
		return r.Coaches
	case models.RoleAthlete:
		return r.Athletes
	case models.RoleReservist:
		return r.Reservists
	case models.RoleChaperone:
		return r.Chaperones
	}
	return nil
}

// SynthesizeAthletes builds placeholder members ("Athlete 1", "Athlete 2",
// ...) for legacy registrations that recorded only a head count. Downstream
// participant counting then works the same regardless of provenance.
func SynthesizeAthletes(n int) []models.RegisteredMember {
	if n <= 0 {
		return []models.RegisteredMember{}
	}
	out := make([]models.RegisteredMember, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.RegisteredMember{
			FirstName: "Athlete",
			LastName:  strconv.Itoa(i),
			Role:      models.RoleAthlete,
		})
	}
	return out
}
