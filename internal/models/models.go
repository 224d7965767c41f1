package models

import "time"

// Role tags a person's place on a roster. RoleOrder is the fixed listing
// order used by the snapshot builder and anything that renders members.
type Role string

const (
	RoleCoach     Role = "coach"
	RoleAthlete   Role = "athlete"
	RoleReservist Role = "reservist"
	RoleChaperone Role = "chaperone"
)

var RoleOrder = []Role{RoleCoach, RoleAthlete, RoleReservist, RoleChaperone}

// SnapshotSource distinguishes roster-derived snapshots from ad-hoc uploads.
type SnapshotSource string

const (
	SourceClubTeam SnapshotSource = "club_team"
	SourceUpload   SnapshotSource = "upload"
)

// Registration status values.
const (
	RegStatusPending = "pending"
	RegStatusPaid    = "paid"
)

type Club struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name string `gorm:"not null"`
}

type Person struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ClubID    string `gorm:"index;not null"`
	FirstName string
	LastName  string
	Gender    string // male | female | "" when not provided
	DOB       *time.Time
	Email     string
	Phone     string
}

type Team struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ClubID   string `gorm:"index;not null"`
	Name     string
	Division string
}

// RosterSlot is one person's membership on a team's live roster. Slots are
// freely edited until a registration snapshot is taken; the snapshot copies
// people out, it never references slots.
type RosterSlot struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	TeamID   string `gorm:"index;not null"`
	PersonID string `gorm:"index;not null"`
	Role     Role   `gorm:"not null"`
}

// Roster is the in-memory view of a team's live membership, partitioned
// into the four role buckets. Assembled by the store from RosterSlot rows;
// not a table of its own.
type Roster struct {
	TeamID     string
	Coaches    []Person
	Athletes   []Person
	Reservists []Person
	Chaperones []Person
}

// RegisteredMember is an immutable copy of a Person plus its role, captured
// at snapshot time.
type RegisteredMember struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	RegisteredTeamID string `gorm:"index"`
	FirstName        string
	LastName         string
	Gender           string
	Role             Role
	DOB              *time.Time
	Email            string
	Phone            string
}

// Name returns "First Last" with either side optional.
func (m RegisteredMember) Name() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	default:
		return m.FirstName + " " + m.LastName
	}
}

// RegisteredTeam is the frozen composition of a team at signup. Never
// updated after creation; re-registering creates a new snapshot.
type RegisteredTeam struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time

	ClubID       string `gorm:"index;not null"`
	Name         string
	Division     string
	Size         int
	CoedCount    int
	Source       SnapshotSource     `gorm:"not null"`
	SourceTeamID string             `gorm:"index"` // set for club_team snapshots
	Members      []RegisteredMember `gorm:"foreignKey:RegisteredTeamID"`
}

// Registration is the transactional record of a club entering a division of
// an event. Status and PaidAt are the only fields that change after
// creation.
type Registration struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ClubID    string `gorm:"index;not null"`
	EventID   string `gorm:"index"`
	EventName string
	EventDate *time.Time
	Location  string
	Division  string

	RegisteredTeamID string `gorm:"index"`
	TeamID           string // legacy records link the live team directly
	Athletes         int    // legacy records may carry only a head count

	InvoiceTotal    string // raw amount as entered, e.g. "$350.00"
	PaymentDeadline *time.Time

	Status string `gorm:"index"` // pending | paid
	PaidAt *time.Time

	SnapshotTakenAt      *time.Time
	SnapshotSourceTeamID string
}

// DivisionPricing is one division's price configuration for an event.
// Early-bird fields are nil when no discounted tier is offered.
type DivisionPricing struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	EventID           string `gorm:"index"`
	Name              string
	EarlyBirdPrice    *float64
	EarlyBirdDeadline *time.Time
	RegularPrice      float64
}

type Event struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name                 string
	Date                 *time.Time
	Location             string
	RegistrationDeadline *time.Time
	EarlyBirdDeadline    *time.Time
	Divisions            []DivisionPricing `gorm:"foreignKey:EventID"`
}

// Payment records money already settled against a registration. Rows are
// appended by settlement and never edited or removed.
type Payment struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	RegistrationID string `gorm:"index;not null"`
	Amount         float64
	Method         string
	LastFour       string // display only
	Date           time.Time
}

// ClubData is everything the invoice engine needs to know about one club:
// its live teams and rosters plus the immutable registration history.
type ClubData struct {
	Club            Club
	Teams           []Team
	Rosters         []Roster
	RegisteredTeams []RegisteredTeam
	Registrations   []Registration
}

// RosterFor returns the live roster for a team, or nil if none is known.
func (c ClubData) RosterFor(teamID string) *Roster {
	for i := range c.Rosters {
		if c.Rosters[i].TeamID == teamID {
			return &c.Rosters[i]
		}
	}
	return nil
}
