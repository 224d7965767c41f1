package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Jimmysmirlies/cheerbase/internal/invoice"
	"github.com/Jimmysmirlies/cheerbase/internal/models"
	"github.com/Jimmysmirlies/cheerbase/internal/store"
)

var (
	ErrTeamNotFound = errors.New("team not found for club")
	ErrAlreadyPaid  = errors.New("registration already paid")
)

// RegisterTeam signs a club's team up for one division of an event. The
// live roster is frozen into an immutable snapshot and the signup-time
// price tier is recorded on the registration, all in one transaction.
func RegisterTeam(db *gorm.DB, clubID, teamID string, event models.Event, division string) (*models.Registration, error) {
	var reg *models.Registration
	err := db.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Where("id = ? AND club_id = ?", teamID, clubID).First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		rt, err := SnapshotTeamTx(tx, team)
		if err != nil {
			return err
		}

		var err2 error
		reg, err2 = createRegistrationTx(tx, clubID, event, division, rt, teamID)
		return err2
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterUpload signs up an ad-hoc member list that never lived on a club
// roster (e.g. a CSV import done elsewhere). The snapshot is tagged as an
// upload and carries no source team link.
func RegisterUpload(db *gorm.DB, clubID, teamName string, event models.Event, division string, members []models.RegisteredMember) (*models.Registration, error) {
	var reg *models.Registration
	err := db.Transaction(func(tx *gorm.DB) error {
		rt := models.RegisteredTeam{
			ID:        uuid.NewString(),
			ClubID:    clubID,
			Name:      teamName,
			Division:  division,
			Size:      len(members),
			CoedCount: coedCount(members),
			Source:    models.SourceUpload,
		}
		if err := tx.Create(&rt).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ID = 0
			members[i].RegisteredTeamID = rt.ID
			if err := tx.Create(&members[i]).Error; err != nil {
				return err
			}
		}
		rt.Members = members

		var err error
		reg, err = createRegistrationTx(tx, clubID, event, division, &rt, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// SnapshotTeamTx freezes a team's current roster into an immutable
// RegisteredTeam inside an existing transaction. Later roster edits never
// touch the copy.
func SnapshotTeamTx(tx *gorm.DB, team models.Team) (*models.RegisteredTeam, error) {
	roster, err := store.LoadRoster(tx, team.ID)
	if err != nil {
		return nil, err
	}
	members := invoice.SnapshotRoster(roster)

	rt := models.RegisteredTeam{
		ID:           uuid.NewString(),
		ClubID:       team.ClubID,
		Name:         team.Name,
		Division:     team.Division,
		Size:         len(members),
		CoedCount:    coedCount(members),
		Source:       models.SourceClubTeam,
		SourceTeamID: team.ID,
	}
	if err := tx.Create(&rt).Error; err != nil {
		return nil, err
	}
	for i := range members {
		members[i].RegisteredTeamID = rt.ID
		if err := tx.Create(&members[i]).Error; err != nil {
			return nil, err
		}
	}
	rt.Members = members
	return &rt, nil
}

// MarkPaid settles a registration: append the payment fact, flip the status
// to paid, stamp PaidAt. The only mutation a registration ever sees.
func MarkPaid(db *gorm.DB, registrationID string, amount float64, method, lastFour string, when time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var reg models.Registration
		if err := tx.First(&reg, "id = ?", registrationID).Error; err != nil {
			return err
		}
		if reg.Status == models.RegStatusPaid {
			return ErrAlreadyPaid
		}

		pay := models.Payment{
			RegistrationID: reg.ID,
			Amount:         amount,
			Method:         method,
			LastFour:       lastFour,
			Date:           when,
		}
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		reg.Status = models.RegStatusPaid
		reg.PaidAt = &when
		return tx.Save(&reg).Error
	})
}

func createRegistrationTx(tx *gorm.DB, clubID string, event models.Event, division string, rt *models.RegisteredTeam, sourceTeamID string) (*models.Registration, error) {
	now := time.Now().UTC()

	// Price the signup at today's tier; the recorded total is the pre-tax
	// amount for this team, which later backstops invoices for events whose
	// pricing has since been removed.
	var total float64
	for _, p := range event.Divisions {
		if p.Name == division {
			_, unit := invoice.ResolvePricing(p, now)
			total = unit * float64(len(rt.Members))
			break
		}
	}

	reg := models.Registration{
		ID:                   uuid.NewString(),
		ClubID:               clubID,
		EventID:              event.ID,
		EventName:            event.Name,
		EventDate:            event.Date,
		Location:             event.Location,
		Division:             division,
		RegisteredTeamID:     rt.ID,
		InvoiceTotal:         fmt.Sprintf("$%.2f", total),
		PaymentDeadline:      event.RegistrationDeadline,
		Status:               models.RegStatusPending,
		SnapshotTakenAt:      &now,
		SnapshotSourceTeamID: sourceTeamID,
	}
	if err := tx.Create(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func coedCount(members []models.RegisteredMember) int {
	n := 0
	for _, m := range members {
		if m.Gender == "male" && m.Role == models.RoleAthlete {
			n++
		}
	}
	return n
}
