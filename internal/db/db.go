package db

import (
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

var conn *gorm.DB

func Init(path string, log zerolog.Logger) error {
	var err error
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	conn, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
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
	); err != nil {
		return err
	}

	// Composite indexes that GORM doesn't auto-create from struct tags.
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_reg_club_status ON registrations(club_id, status)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_slot_team_role  ON roster_slots(team_id, role)")

	log.Info().Str("path", path).Msg("database ready (sqlite)")
	return nil
}

func Conn() *gorm.DB {
	return conn
}
