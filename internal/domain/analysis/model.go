package analysis

import "time"

// Analysis is one AI-generated analysis of a patient's records. Unlike
// appointments these are created server-side, so the owner is a single
// well-formed id.
type Analysis struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Kind      string    `json:"kind"`
	Summary   string    `json:"summary,omitempty"`
	ReportURL string    `json:"reportUrl,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasReport reports whether a rendered report document exists for this
// analysis.
func (a *Analysis) HasReport() bool { return a.ReportURL != "" }
