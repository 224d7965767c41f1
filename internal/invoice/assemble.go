package invoice

import (
	"strings"
	"time"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

// Default tax rates. GST and QST are both applied to the pre-tax subtotal,
// not compounded on each other.
const (
	DefaultGSTRate = 0.05
	DefaultQSTRate = 0.09975
)

// Invoice status values.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// Options carries caller-supplied overrides for Assemble. The zero value is
// valid: ids are hashed from the registration, the order version starts at
// 1, and Now defaults to the wall clock.
type Options struct {
	ClubName     string
	InvoiceID    string
	OrderVersion int
	Now          time.Time
}

// PaymentLine is a settled payment as shown on the invoice.
type PaymentLine struct {
	Amount   float64   `json:"amount"`
	Method   string    `json:"method,omitempty"`
	LastFour string    `json:"lastFour,omitempty"`
	Date     time.Time `json:"date"`
}

// InvoiceData is the assembled invoice. It is built fresh on every call and
// never mutated in place; amending produces a new invoice with a bumped
// order version.
type InvoiceData struct {
	InvoiceID       string                   `json:"invoiceId"`
	OrderVersion    int                      `json:"orderVersion"`
	InvoiceNumber   string                   `json:"invoiceNumber"`
	IssuedDate      time.Time                `json:"issuedDate"`
	EventName       string                   `json:"eventName"`
	ClubName        string                   `json:"clubName"`
	Divisions       []DivisionGroup          `json:"entriesByDivision"`
	DivisionPricing []models.DivisionPricing `json:"divisionPricing"`
	Payments        []PaymentLine            `json:"payments"`
	Status          string                   `json:"status"`
	GSTRate         float64                  `json:"gstRate"`
	QSTRate         float64                  `json:"qstRate"`
}

// Assemble builds a complete invoice for one registration from the club's
// data and the event's pricing. It never fails: missing snapshots, rosters,
// pricing, and dates all degrade to computable fallbacks so a structurally
// valid invoice always comes back.
func Assemble(reg models.Registration, club models.ClubData, event *models.Event, opts Options) InvoiceData {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	rt := resolveRegisteredTeam(reg, club)
	members := memberList(reg, rt, club)
	division := canonicalDivision(divisionOf(reg, rt), event)

	entry := RegistrationEntry{
		RegistrationID:  reg.ID,
		Division:        division,
		Members:         projectMembers(members),
		SnapshotTakenAt: reg.SnapshotTakenAt,
		PaymentDeadline: reg.PaymentDeadline,
		Status:          reg.Status,
	}
	if rt != nil {
		entry.TeamID = rt.ID
		entry.TeamName = rt.Name
	} else if reg.TeamID != "" {
		entry.TeamID = reg.TeamID
		entry.TeamName = teamName(club, reg.TeamID)
	}

	groups := GroupByDivision([]RegistrationEntry{entry})

	clubName := opts.ClubName
	if clubName == "" {
		clubName = club.Club.Name
	}

	version := opts.OrderVersion
	if version <= 0 {
		version = 1
	}
	id := NormalizeInvoiceID(opts.InvoiceID, reg.ID+":"+reg.EventID)

	inv := InvoiceData{
		InvoiceID:       id,
		OrderVersion:    version,
		InvoiceNumber:   FormatInvoiceNumber(id, version),
		IssuedDate:      issuedDate(reg, now),
		EventName:       reg.EventName,
		ClubName:        clubName,
		Divisions:       groups,
		DivisionPricing: pricingFor(groups, event, reg),
		Payments:        []PaymentLine{},
		Status:          StatusUnpaid,
		GSTRate:         DefaultGSTRate,
		QSTRate:         DefaultQSTRate,
	}

	if reg.Status == models.RegStatusPaid {
		inv.Status = StatusPaid
		// A paid registration shows one settlement covering the computed
		// total, dated at settlement time when known.
		when := inv.IssuedDate
		if reg.PaidAt != nil {
			when = *reg.PaidAt
		}
		inv.Payments = []PaymentLine{{
			Amount: ComputeTotals(inv).Total,
			Method: "settlement",
			Date:   when,
		}}
	}
	return inv
}

// resolveRegisteredTeam finds the snapshot behind a registration: the
// explicit RegisteredTeamID link first, else a legacy TeamID matched
// against a snapshot's source team. First match wins.
func resolveRegisteredTeam(reg models.Registration, club models.ClubData) *models.RegisteredTeam {
	if reg.RegisteredTeamID != "" {
		for i := range club.RegisteredTeams {
			if club.RegisteredTeams[i].ID == reg.RegisteredTeamID {
				return &club.RegisteredTeams[i]
			}
		}
	}
	if reg.TeamID != "" {
		for i := range club.RegisteredTeams {
			if club.RegisteredTeams[i].SourceTeamID == reg.TeamID {
				return &club.RegisteredTeams[i]
			}
		}
	}
	return nil
}

// memberList prefers snapshot members, then the live roster, then athletes
// synthesized from a legacy head count. An unresolvable registration yields
// an empty list rather than failing the invoice.
func memberList(reg models.Registration, rt *models.RegisteredTeam, club models.ClubData) []models.RegisteredMember {
	if rt != nil && len(rt.Members) > 0 {
		return rt.Members
	}
	teamID := reg.TeamID
	if rt != nil && rt.SourceTeamID != "" {
		teamID = rt.SourceTeamID
	}
	if teamID != "" {
		if r := club.RosterFor(teamID); r != nil {
			return SnapshotRoster(r)
		}
	}
	return SynthesizeAthletes(reg.Athletes)
}

func divisionOf(reg models.Registration, rt *models.RegisteredTeam) string {
	if reg.Division != "" {
		return reg.Division
	}
	if rt != nil {
		return rt.Division
	}
	return ""
}

// canonicalDivision maps a raw division name onto the event's canonical
// spelling when one matches case-insensitively; unmatched names pass
// through unchanged, never dropped.
func canonicalDivision(name string, event *models.Event) string {
	if event == nil {
		return name
	}
	for _, d := range event.Divisions {
		if strings.EqualFold(d.Name, name) {
			return d.Name
		}
	}
	return name
}

// pricingFor starts from the event's configured divisions and synthesizes a
// regular-only row for any division that has entries but no configured
// price, deriving the unit price from the registration's recorded total so
// historical invoices stay computable.
func pricingFor(groups []DivisionGroup, event *models.Event, reg models.Registration) []models.DivisionPricing {
	var pricing []models.DivisionPricing
	if event != nil {
		pricing = append(pricing, event.Divisions...)
	}
	for _, g := range groups {
		if hasPricing(pricing, g.Division) {
			continue
		}
		participants := 0
		for _, e := range g.Entries {
			participants += len(e.Members)
		}
		if participants == 0 {
			participants = 1
		}
		pricing = append(pricing, models.DivisionPricing{
			EventID:      reg.EventID,
			Name:         g.Division,
			RegularPrice: ParseMoney(reg.InvoiceTotal) / float64(participants),
		})
	}
	return pricing
}

func hasPricing(pricing []models.DivisionPricing, division string) bool {
	for _, p := range pricing {
		if strings.EqualFold(p.Name, division) {
			return true
		}
	}
	return false
}

// issuedDate picks the first known instant: snapshot time, payment
// deadline, event date, then now. Never zero.
func issuedDate(reg models.Registration, now time.Time) time.Time {
	switch {
	case reg.SnapshotTakenAt != nil && !reg.SnapshotTakenAt.IsZero():
		return *reg.SnapshotTakenAt
	case reg.PaymentDeadline != nil && !reg.PaymentDeadline.IsZero():
		return *reg.PaymentDeadline
	case reg.EventDate != nil && !reg.EventDate.IsZero():
		return *reg.EventDate
	}
	return now
}

func projectMembers(members []models.RegisteredMember) []EntryMember {
	out := make([]EntryMember, 0, len(members))
	for _, m := range members {
		out = append(out, EntryMember{
			Name:  m.Name(),
			Role:  m.Role,
			DOB:   m.DOB,
			Email: m.Email,
			Phone: m.Phone,
		})
	}
	return out
}

func teamName(club models.ClubData, teamID string) string {
	for _, t := range club.Teams {
		if t.ID == teamID {
			return t.Name
		}
	}
	return ""
}
