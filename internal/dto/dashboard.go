package dto

import "github.com/noah-isme/mcat-progress-api/internal/analytics"

// DashboardResponse is the payload of the dashboard endpoints.
type DashboardResponse struct {
	UID   string `json:"uid"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Owner string `json:"owner,omitempty"`

	*analytics.Dashboard
}
