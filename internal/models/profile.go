package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Profile is the single record owned by an authenticated identity.
type Profile struct {
	UID              string             `db:"uid" json:"uid"`
	Email            string             `db:"email" json:"email"`
	Name             string             `db:"name" json:"name"`
	Zipcode          string             `db:"zipcode" json:"zipcode"`
	GPA              GPA                `db:"gpa" json:"gpa"`
	Degrees          Degrees            `db:"degrees" json:"degrees"`
	Target           Target             `db:"target" json:"mcat_target"`
	CategoryTargets  CategoryTargets    `db:"ecs_targets" json:"ecs_targets"`
	SharedWith       pq.StringArray     `db:"shared_with" json:"shared_with"`
	ProfileComplete  bool               `db:"profile_complete" json:"profile_complete"`
	CreatedAt        time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `db:"updated_at" json:"updated_at"`
	SetupActivities  SetupActivities    `db:"-" json:"extracurriculars,omitempty"`
	PracticeLogs     []PracticeLogEntry `db:"-" json:"practice_logs,omitempty"`
	Attempts         []OfficialAttempt  `db:"-" json:"mcat_attempts,omitempty"`
	Extracurriculars []Extracurricular  `db:"-" json:"extracurriculars_v2,omitempty"`
	Cycles           []ApplicationCycle `db:"-" json:"application_cycles,omitempty"`
}

// GPAPair holds overall and science GPA for one level of study.
type GPAPair struct {
	Overall *float64 `json:"overall,omitempty" validate:"omitempty,gte=0,lte=4.5"`
	Science *float64 `json:"science,omitempty" validate:"omitempty,gte=0,lte=4.5"`
}

// GPA groups undergraduate and graduate GPAs, persisted as JSONB.
type GPA struct {
	Undergrad GPAPair `json:"undergrad"`
	Grad      GPAPair `json:"grad"`
}

// Value marshals the GPA for persistence.
func (g GPA) Value() (driver.Value, error) {
	return marshalJSONColumn(g, "gpa")
}

// Scan unmarshals a JSONB GPA payload.
func (g *GPA) Scan(value interface{}) error {
	*g = GPA{}
	return scanJSONColumn(value, g, "gpa")
}

// Degree is one earned or in-progress degree.
type Degree struct {
	Degree string `json:"degree" validate:"required,max=120"`
	School string `json:"school" validate:"required,max=160"`
}

// Degrees groups degree history, persisted as JSONB.
type Degrees struct {
	Undergrad []Degree `json:"undergrad" validate:"dive"`
	Grad      []Degree `json:"grad" validate:"dive"`
}

// Value marshals degrees for persistence.
func (d Degrees) Value() (driver.Value, error) {
	if d.Undergrad == nil {
		d.Undergrad = []Degree{}
	}
	if d.Grad == nil {
		d.Grad = []Degree{}
	}
	return marshalJSONColumn(d, "degrees")
}

// Scan unmarshals a JSONB degrees payload.
func (d *Degrees) Scan(value interface{}) error {
	*d = Degrees{}
	return scanJSONColumn(value, d, "degrees")
}

// Target holds the user's goal score per section. Total is always the sum of the sections.
type Target struct {
	ChemPhys   int `json:"chemPhys"`
	CARS       int `json:"cars"`
	BioBiochem int `json:"bioBiochem"`
	PsychSoc   int `json:"psychSoc"`
	Total      int `json:"total"`
}

// Section returns the target for a section.
func (t Target) Section(s Section) int {
	switch s {
	case SectionChemPhys:
		return t.ChemPhys
	case SectionCARS:
		return t.CARS
	case SectionBioBiochem:
		return t.BioBiochem
	case SectionPsychSoc:
		return t.PsychSoc
	}
	return 0
}

// Recompute returns a copy with Total set to the sum of the section targets.
func (t Target) Recompute() Target {
	t.Total = t.ChemPhys + t.CARS + t.BioBiochem + t.PsychSoc
	return t
}

// Value marshals the target for persistence.
func (t Target) Value() (driver.Value, error) {
	return marshalJSONColumn(t.Recompute(), "target")
}

// Scan unmarshals a JSONB target payload.
func (t *Target) Scan(value interface{}) error {
	*t = Target{}
	if err := scanJSONColumn(value, t, "target"); err != nil {
		return err
	}
	*t = t.Recompute()
	return nil
}

// DefaultCategoryHours is the target applied to a category with no explicit target.
const DefaultCategoryHours = 100

// CategoryTargets maps an extracurricular category to its target hours.
type CategoryTargets map[Category]float64

// DefaultCategoryTargets returns a target of hours for every category.
func DefaultCategoryTargets(hours float64) CategoryTargets {
	out := make(CategoryTargets, len(Categories))
	for _, c := range Categories {
		out[c] = hours
	}
	return out
}

// Merge overlays known categories from patch onto a copy of t.
func (t CategoryTargets) Merge(patch CategoryTargets) CategoryTargets {
	out := make(CategoryTargets, len(Categories))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range patch {
		if k.Valid() && v >= 0 {
			out[k] = v
		}
	}
	return out
}

// Value marshals targets for persistence.
func (t CategoryTargets) Value() (driver.Value, error) {
	if t == nil {
		t = CategoryTargets{}
	}
	return marshalJSONColumn(map[Category]float64(t), "ecs targets")
}

// Scan unmarshals a JSONB targets payload.
func (t *CategoryTargets) Scan(value interface{}) error {
	out := CategoryTargets{}
	if err := scanJSONColumn(value, &out, "ecs targets"); err != nil {
		return err
	}
	*t = out
	return nil
}

func marshalJSONColumn(v interface{}, name string) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", name, err)
	}
	return data, nil
}

func scanJSONColumn(value interface{}, dest interface{}, name string) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for %s", value, name)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}
