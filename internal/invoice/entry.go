package invoice

import (
	"time"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

// EntryMember is a snapshot member projected for invoice display.
type EntryMember struct {
	Name  string      `json:"name"`
	Role  models.Role `json:"type"`
	DOB   *time.Time  `json:"dob,omitempty"`
	Email string      `json:"email,omitempty"`
	Phone string      `json:"phone,omitempty"`
}

// RegistrationEntry is one team's participation in one division, rebuilt on
// demand from a registration and its snapshot; never persisted.
type RegistrationEntry struct {
	RegistrationID  string        `json:"registrationId"`
	Division        string        `json:"division"`
	TeamID          string        `json:"teamId,omitempty"`
	TeamName        string        `json:"teamName,omitempty"`
	Members         []EntryMember `json:"members"`
	SnapshotTakenAt *time.Time    `json:"snapshotTakenAt,omitempty"`
	PaymentDeadline *time.Time    `json:"paymentDeadline,omitempty"`
	Status          string        `json:"status"`
}

// DivisionGroup is one division's bucket of entries. A slice of groups
// stands in for an insertion-ordered map keyed by division name.
type DivisionGroup struct {
	Division string              `json:"division"`
	Entries  []RegistrationEntry `json:"entries"`
}

// GroupByDivision buckets entries by division name, preserving the order in
// which divisions are first seen and the relative order of entries within
// each bucket. Total: never drops or duplicates an entry.
func GroupByDivision(entries []RegistrationEntry) []DivisionGroup {
	groups := []DivisionGroup{}
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		i, ok := index[e.Division]
		if !ok {
			i = len(groups)
			index[e.Division] = i
			groups = append(groups, DivisionGroup{Division: e.Division})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
