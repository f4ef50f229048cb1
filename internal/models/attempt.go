package models

import "time"

// AttemptScores are the section scores of an official attempt. A nil section means the score was not reported.
type AttemptScores struct {
	ChemPhys   *int `db:"chem_phys" json:"chemPhys,omitempty"`
	CARS       *int `db:"cars" json:"cars,omitempty"`
	BioBiochem *int `db:"bio_biochem" json:"bioBiochem,omitempty"`
	PsychSoc   *int `db:"psych_soc" json:"psychSoc,omitempty"`
	Total      int  `db:"total" json:"total"`
}

// Section returns the score for a section, zero when absent.
func (s AttemptScores) Section(sec Section) int {
	var v *int
	switch sec {
	case SectionChemPhys:
		v = s.ChemPhys
	case SectionCARS:
		v = s.CARS
	case SectionBioBiochem:
		v = s.BioBiochem
	case SectionPsychSoc:
		v = s.PsychSoc
	}
	if v == nil {
		return 0
	}
	return *v
}

// Recompute returns a copy whose Total is the sum of the present section scores.
func (s AttemptScores) Recompute() AttemptScores {
	total := 0
	for _, sec := range Sections {
		total += s.Section(sec)
	}
	s.Total = total
	return s
}

// OfficialAttempt is one official MCAT sitting.
type OfficialAttempt struct {
	ID          string     `db:"id" json:"id"`
	UID         string     `db:"uid" json:"-"`
	Seq         int64      `db:"seq" json:"-"`
	Date        *time.Time `db:"date" json:"date,omitempty"`
	PrepDetails string     `db:"prep_details" json:"prep_details,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	AttemptScores `json:"scores"`
}
