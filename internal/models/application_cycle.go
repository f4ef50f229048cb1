package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
)

// OutcomeStatus is the result of one school application.
type OutcomeStatus string

const (
	OutcomeAccepted   OutcomeStatus = "Accepted"
	OutcomeRejected   OutcomeStatus = "Rejected"
	OutcomeWaitlisted OutcomeStatus = "Waitlisted"
	OutcomeInterview  OutcomeStatus = "Interview"
	OutcomePending    OutcomeStatus = "Pending"
)

// CycleOutcome records the status at one school.
type CycleOutcome struct {
	School string        `json:"school" validate:"required"`
	Status OutcomeStatus `json:"status" validate:"required,oneof=Accepted Rejected Waitlisted Interview Pending"`
}

// CycleOutcomes is persisted as JSONB.
type CycleOutcomes []CycleOutcome

// Value marshals outcomes for persistence.
func (o CycleOutcomes) Value() (driver.Value, error) {
	if o == nil {
		o = CycleOutcomes{}
	}
	return marshalJSONColumn([]CycleOutcome(o), "cycle outcomes")
}

// Scan unmarshals a JSONB outcomes payload.
func (o *CycleOutcomes) Scan(value interface{}) error {
	out := CycleOutcomes{}
	if err := scanJSONColumn(value, &out, "cycle outcomes"); err != nil {
		return err
	}
	*o = out
	return nil
}

// ApplicationCycle is one year of medical school applications.
type ApplicationCycle struct {
	ID             string         `db:"id" json:"id"`
	UID            string         `db:"uid" json:"-"`
	Year           int            `db:"year" json:"year"`
	SchoolsApplied pq.StringArray `db:"schools_applied" json:"schools_applied"`
	Outcomes       CycleOutcomes  `db:"outcomes" json:"outcomes"`
	Notes          string         `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}
