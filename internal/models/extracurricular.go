package models

import "time"

// Extracurricular is a tracked activity entry, editable after profile setup.
type Extracurricular struct {
	ID           string     `db:"id" json:"id"`
	UID          string     `db:"uid" json:"-"`
	Category     Category   `db:"category" json:"type"`
	Organization string     `db:"organization" json:"organization"`
	Role         string     `db:"role" json:"role,omitempty"`
	StartDate    *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate      *time.Time `db:"end_date" json:"end_date,omitempty"`
	Hours        float64    `db:"hours" json:"hours"`
	Description  string     `db:"description" json:"description,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
