// go-models/tenancy.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenancy links one resident to one unit. The flags govern what the
// resident shares with neighbours and are not consulted by roster exports.
type Tenancy struct {
	Versioned
	ID              uuid.UUID `json:"id"`
	UnitID          uuid.UUID `json:"unit_id"`
	ResidentID      uuid.UUID `json:"resident_id"`
	ShowInRoster    bool      `json:"show_in_roster"`
	ShowContactInfo bool      `json:"show_contact_info"`
	AllowContact    bool      `json:"allow_contact"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (t *Tenancy) GetID() string { return t.ID.String() }
