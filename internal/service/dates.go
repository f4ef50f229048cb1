package service

import (
	"strings"
	"time"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// parseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, field+" must be a YYYY-MM-DD date")
	}
	return &t, nil
}

// DateRangeQuery is an optional inclusive YYYY-MM-DD range narrowing practice logs.
type DateRangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Filter trims and parses the bounds. A to date before the from date is rejected.
func (q *DateRangeQuery) Filter() (models.PracticeLogFilter, error) {
	q.From = strings.TrimSpace(q.From)
	q.To = strings.TrimSpace(q.To)
	from, err := parseDate("from", q.From)
	if err != nil {
		return models.PracticeLogFilter{}, err
	}
	to, err := parseDate("to", q.To)
	if err != nil {
		return models.PracticeLogFilter{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return models.PracticeLogFilter{}, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}
	return models.PracticeLogFilter{From: from, To: to}, nil
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
