package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jimmysmirlies/cheerbase/internal/invoice"
	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test db")
	require.NoError(t, gdb.AutoMigrate(
		&models.Club{},
		&models.Person{},
		&models.Team{},
		&models.RosterSlot{},
		&models.RegisteredTeam{},
		&models.RegisteredMember{},
		&models.Registration{},
		&models.Event{},
		&models.DivisionPricing{},
		&models.Payment{},
	), "auto-migrate")
	return gdb
}

func seedTeam(t *testing.T, gdb *gorm.DB) models.Team {
	t.Helper()
	require.NoError(t, gdb.Create(&models.Club{ID: "club1", Name: "Northside Allstars"}).Error)
	team := models.Team{ID: "team1", ClubID: "club1", Name: "Nova", Division: "U14 - Novice - 3"}
	require.NoError(t, gdb.Create(&team).Error)

	people := []models.Person{
		{ID: "p1", ClubID: "club1", FirstName: "Carla", LastName: "Coach"},
		{ID: "p2", ClubID: "club1", FirstName: "Ana", LastName: "One", Gender: "female"},
		{ID: "p3", ClubID: "club1", FirstName: "Ben", LastName: "Two", Gender: "male"},
		{ID: "p4", ClubID: "club1", FirstName: "Cam", LastName: "Three", Gender: "female"},
	}
	roles := []models.Role{models.RoleCoach, models.RoleAthlete, models.RoleAthlete, models.RoleAthlete}
	for i := range people {
		require.NoError(t, gdb.Create(&people[i]).Error)
		require.NoError(t, gdb.Create(&models.RosterSlot{TeamID: team.ID, PersonID: people[i].ID, Role: roles[i]}).Error)
	}
	return team
}

func testEvent() models.Event {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	return models.Event{
		ID:   "evt1",
		Name: "Winter Classic",
		Date: &date,
		Divisions: []models.DivisionPricing{
			{EventID: "evt1", Name: "U14 - Novice - 3", RegularPrice: 130},
		},
	}
}

func TestRegisterTeam(t *testing.T) {
	gdb := openTestDB(t)
	team := seedTeam(t, gdb)

	reg, err := RegisterTeam(gdb, "club1", team.ID, testEvent(), "U14 - Novice - 3")
	require.NoError(t, err)

	assert.Equal(t, models.RegStatusPending, reg.Status)
	assert.NotEmpty(t, reg.RegisteredTeamID)
	assert.Equal(t, "team1", reg.SnapshotSourceTeamID)
	require.NotNil(t, reg.SnapshotTakenAt)
	// 4 members at the regular price of 130.
	assert.Equal(t, "$520.00", reg.InvoiceTotal)

	var rt models.RegisteredTeam
	require.NoError(t, gdb.Preload("Members").First(&rt, "id = ?", reg.RegisteredTeamID).Error)
	assert.Equal(t, models.SourceClubTeam, rt.Source)
	assert.Equal(t, 4, rt.Size)
	assert.Equal(t, 1, rt.CoedCount) // one male athlete
	require.Len(t, rt.Members, 4)
	// Fixed role order: coach first.
	assert.Equal(t, models.RoleCoach, rt.Members[0].Role)
}

func TestRegisterTeam_UnknownTeam(t *testing.T) {
	gdb := openTestDB(t)
	seedTeam(t, gdb)
	_, err := RegisterTeam(gdb, "club1", "ghost", testEvent(), "U14 - Novice - 3")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

// TestSnapshotImmutability is the core invariant: roster edits after signup
// never leak into the frozen snapshot.
func TestSnapshotImmutability(t *testing.T) {
	gdb := openTestDB(t)
	team := seedTeam(t, gdb)

	reg, err := RegisterTeam(gdb, "club1", team.ID, testEvent(), "U14 - Novice - 3")
	require.NoError(t, err)

	// Mutate the live roster: rename a person, add a fifth member.
	require.NoError(t, gdb.Model(&models.Person{}).Where("id = ?", "p2").Update("first_name", "Renamed").Error)
	require.NoError(t, gdb.Create(&models.Person{ID: "p5", ClubID: "club1", FirstName: "New", LastName: "Kid"}).Error)
	require.NoError(t, gdb.Create(&models.RosterSlot{TeamID: team.ID, PersonID: "p5", Role: models.RoleAthlete}).Error)

	var rt models.RegisteredTeam
	require.NoError(t, gdb.Preload("Members").First(&rt, "id = ?", reg.RegisteredTeamID).Error)
	require.Len(t, rt.Members, 4, "snapshot must not grow with the roster")
	for _, m := range rt.Members {
		assert.NotEqual(t, "Renamed", m.FirstName, "snapshot must keep the captured name")
	}

	// The invoice built from the snapshot still bills 4 participants.
	club := models.ClubData{
		Club:            models.Club{ID: "club1", Name: "Northside Allstars"},
		RegisteredTeams: []models.RegisteredTeam{rt},
	}
	ev := testEvent()
	inv := invoice.Assemble(*reg, club, &ev, invoice.Options{})
	tot := invoice.ComputeTotals(inv)
	assert.Equal(t, 4, tot.LineItems[0].Quantity)
}

func TestRegisterUpload(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, gdb.Create(&models.Club{ID: "club1", Name: "Northside Allstars"}).Error)

	members := []models.RegisteredMember{
		{FirstName: "A", Role: models.RoleAthlete, Gender: "male"},
		{FirstName: "B", Role: models.RoleAthlete},
		{FirstName: "C", Role: models.RoleAthlete},
	}
	reg, err := RegisterUpload(gdb, "club1", "Imports", testEvent(), "U14 - Novice - 3", members)
	require.NoError(t, err)

	var rt models.RegisteredTeam
	require.NoError(t, gdb.Preload("Members").First(&rt, "id = ?", reg.RegisteredTeamID).Error)
	assert.Equal(t, models.SourceUpload, rt.Source)
	assert.Empty(t, rt.SourceTeamID)
	assert.Equal(t, 3, rt.Size)
	assert.Equal(t, 1, rt.CoedCount)
	assert.Equal(t, "$390.00", reg.InvoiceTotal)
}

func TestMarkPaid(t *testing.T) {
	gdb := openTestDB(t)
	team := seedTeam(t, gdb)
	reg, err := RegisterTeam(gdb, "club1", team.ID, testEvent(), "U14 - Novice - 3")
	require.NoError(t, err)

	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, MarkPaid(gdb, reg.ID, 597.87, "etransfer", "4242", when))

	var got models.Registration
	require.NoError(t, gdb.First(&got, "id = ?", reg.ID).Error)
	assert.Equal(t, models.RegStatusPaid, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(when))

	var pays []models.Payment
	require.NoError(t, gdb.Where("registration_id = ?", reg.ID).Find(&pays).Error)
	require.Len(t, pays, 1)
	assert.Equal(t, 597.87, pays[0].Amount)
	assert.Equal(t, "4242", pays[0].LastFour)

	// Settling twice is a conflict, not a double payment.
	err = MarkPaid(gdb, reg.ID, 597.87, "etransfer", "4242", when)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	require.NoError(t, gdb.Where("registration_id = ?", reg.ID).Find(&pays).Error)
	assert.Len(t, pays, 1)
}
