package models

import "time"

// PracticeLogEntry is one logged practice session. Entries are append-only.
type PracticeLogEntry struct {
	ID             string     `db:"id" json:"id"`
	UID            string     `db:"uid" json:"-"`
	Seq            int64      `db:"seq" json:"-"`
	Date           *time.Time `db:"date" json:"date,omitempty"`
	Section        Section    `db:"section" json:"section"`
	Subtopic       string     `db:"subtopic" json:"subtopic"`
	Platform       string     `db:"platform" json:"platform"`
	RawScore       int        `db:"raw_score" json:"raw_score"`
	TotalQuestions int        `db:"total_questions" json:"total_questions"`
	Percent        int        `db:"percent" json:"percent"`
	ScaledScore    int        `db:"scaled_score" json:"scaled_score"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// HasScore reports whether the entry carries a usable scaled score. Zero means no data.
func (e PracticeLogEntry) HasScore() bool {
	return e.ScaledScore > 0
}

// PracticeLogFilter restricts practice logs to an inclusive date range.
type PracticeLogFilter struct {
	From *time.Time
	To   *time.Time
}

// Active reports whether any bound is set.
func (f PracticeLogFilter) Active() bool {
	return f.From != nil || f.To != nil
}
