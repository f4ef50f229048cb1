package dto

import "github.com/noah-isme/mcat-progress-api/internal/models"

// PublicProfile is the read-only subset of a profile shown to allow-listed viewers.
type PublicProfile struct {
	Name            string                    `json:"name"`
	MCATTarget      models.Target             `json:"mcat_target"`
	MCATAttempts    []models.OfficialAttempt  `json:"mcat_attempts"`
	PracticeLogs    []models.PracticeLogEntry `json:"practice_logs"`
	ProfileComplete bool                      `json:"profile_complete"`
}

// ShareRequest replaces the viewer allow-list.
type ShareRequest struct {
	Emails []string `json:"emails" validate:"max=50,dive,required,email"`
}

// ShareResponse returns the current allow-list.
type ShareResponse struct {
	SharedWith []string `json:"shared_with"`
}

// SharedAccessResponse tells a viewer whether they may see a profile.
type SharedAccessResponse struct {
	Allowed bool `json:"allowed"`
}
