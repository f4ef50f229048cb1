package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const setupDateLayout = "2006-01-02"

// SetupActivity is an extracurricular captured during profile setup.
type SetupActivity struct {
	ID           string     `db:"id" json:"id"`
	UID          string     `db:"uid" json:"-"`
	Category     Category   `db:"category" json:"category"`
	Organization string     `db:"organization" json:"organization"`
	StartDate    *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate      *time.Time `db:"end_date" json:"end_date,omitempty"`
	Hours        float64    `db:"hours" json:"hours"`
}

// SetupActivities is encoded as a category to entries map, the shape profile upserts accept.
type SetupActivities []SetupActivity

type setupEntryJSON struct {
	Organization string  `json:"organization"`
	StartDate    string  `json:"startDate,omitempty"`
	EndDate      string  `json:"endDate,omitempty"`
	Hours        float64 `json:"hours"`
}

// ByCategory groups the activities, keeping their order within each category.
func (a SetupActivities) ByCategory() map[Category][]SetupActivity {
	out := make(map[Category][]SetupActivity)
	for _, activity := range a {
		out[activity.Category] = append(out[activity.Category], activity)
	}
	return out
}

// MarshalJSON writes the grouped form.
func (a SetupActivities) MarshalJSON() ([]byte, error) {
	grouped := make(map[Category][]setupEntryJSON)
	for _, activity := range a {
		grouped[activity.Category] = append(grouped[activity.Category], setupEntryJSON{
			Organization: activity.Organization,
			StartDate:    formatSetupDate(activity.StartDate),
			EndDate:      formatSetupDate(activity.EndDate),
			Hours:        activity.Hours,
		})
	}
	return json.Marshal(grouped)
}

// UnmarshalJSON reads the grouped form back, categories in canonical order.
func (a *SetupActivities) UnmarshalJSON(data []byte) error {
	var grouped map[Category][]setupEntryJSON
	if err := json.Unmarshal(data, &grouped); err != nil {
		return fmt.Errorf("unmarshal setup extracurriculars: %w", err)
	}
	for category := range grouped {
		if !category.Valid() {
			return fmt.Errorf("unknown extracurricular category %q", category)
		}
	}

	out := make(SetupActivities, 0)
	for _, category := range Categories {
		for _, entry := range grouped[category] {
			start, err := parseSetupDate(entry.StartDate)
			if err != nil {
				return err
			}
			end, err := parseSetupDate(entry.EndDate)
			if err != nil {
				return err
			}
			out = append(out, SetupActivity{
				Category:     category,
				Organization: entry.Organization,
				StartDate:    start,
				EndDate:      end,
				Hours:        entry.Hours,
			})
		}
	}
	*a = out
	return nil
}

func formatSetupDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(setupDateLayout)
}

func parseSetupDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(setupDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("setup extracurricular date %q: %w", raw, err)
	}
	return &t, nil
}
