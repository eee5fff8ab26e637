// go-models/unit.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a flat inside a building. Floor may be negative (basement levels).
type Unit struct {
	Versioned
	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"building_id"`
	UnitNumber string    `json:"unit_number"`
	Floor      int       `json:"floor"`
	EntryCode  string    `json:"entry_code"`

	Tenancies []*Tenancy `json:"tenancies,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (u *Unit) GetID() string { return u.ID.String() }

// HasTenancies reports whether at least one resident is linked to the unit.
func (u *Unit) HasTenancies() bool { return len(u.Tenancies) > 0 }
