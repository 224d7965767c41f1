package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

// ErrNotFound reports a lookup that matched nothing. "Invoice unavailable"
// in the serving layer starts here; the engine itself never errors.
var ErrNotFound = errors.New("not found")

// Repository is the read side the invoice engine depends on. The engine
// never touches the database; callers fetch through this interface and pass
// plain values in.
type Repository interface {
	GetClubData(clubID string) (models.ClubData, error)
	GetEvent(id string) (*models.Event, error)
	GetRegistration(id string) (*models.Registration, error)
}

// Gorm implements Repository over the relational store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// GetClubData loads a club's live teams and rosters plus its immutable
// registration history in one shot.
func (s *Gorm) GetClubData(clubID string) (models.ClubData, error) {
	var out models.ClubData

	if err := s.db.First(&out.Club, "id = ?", clubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrNotFound
		}
		return out, err
	}

	if err := s.db.Where("club_id = ?", clubID).Order("name asc").Find(&out.Teams).Error; err != nil {
		return out, err
	}
	if err := s.db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).Where("club_id = ?", clubID).Order("created_at asc").Find(&out.RegisteredTeams).Error; err != nil {
		return out, err
	}
	if err := s.db.Where("club_id = ?", clubID).Order("created_at asc").Find(&out.Registrations).Error; err != nil {
		return out, err
	}

	for _, t := range out.Teams {
		roster, err := LoadRoster(s.db, t.ID)
		if err != nil {
			return out, err
		}
		out.Rosters = append(out.Rosters, *roster)
	}
	return out, nil
}

// GetEvent loads an event with its division pricing. Deleted or historical
// events come back as ErrNotFound; callers assemble with a nil event.
func (s *Gorm) GetEvent(id string) (*models.Event, error) {
	var ev models.Event
	err := s.db.Preload("Divisions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).First(&ev, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Gorm) GetRegistration(id string) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.First(&reg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// LoadRoster assembles a team's live roster view from its slot rows,
// bucketed by role. Slots pointing at deleted people are skipped.
func LoadRoster(db *gorm.DB, teamID string) (*models.Roster, error) {
	var slots []models.RosterSlot
	if err := db.Where("team_id = ?", teamID).Order("id asc").Find(&slots).Error; err != nil {
		return nil, err
	}

	roster := &models.Roster{TeamID: teamID}
	if len(slots) == 0 {
		return roster, nil
	}

	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.PersonID)
	}
	var people []models.Person
	if err := db.Where("id IN ?", ids).Find(&people).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	for _, s := range slots {
		p, ok := byID[s.PersonID]
		if !ok {
			continue
		}
		switch s.Role {
		case models.RoleCoach:
			roster.Coaches = append(roster.Coaches, p)
		case models.RoleAthlete:
			roster.Athletes = append(roster.Athletes, p)
		case models.RoleReservist:
			roster.Reservists = append(roster.Reservists, p)
		case models.RoleChaperone:
			roster.Chaperones = append(roster.Chaperones, p)
		}
	}
	return roster, nil
}
