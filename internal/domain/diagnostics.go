package domain

import "time"

// DiagnosticStatus grades one check. Warn marks something the panel can run
// without, such as an unselected scripts folder.
type DiagnosticStatus string

const (
	DiagnosticStatusPass DiagnosticStatus = "pass"
	DiagnosticStatusWarn DiagnosticStatus = "warn"
	DiagnosticStatusFail DiagnosticStatus = "fail"
)

// DiagnosticItem is one row of the settings modal's health list. ID is what
// the panel sends back to request a fix.
type DiagnosticItem struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Status  DiagnosticStatus `json:"status"`
	Message string           `json:"message"`
	Hint    string           `json:"hint,omitempty"`
}

// DiagnosticReport is the full health list. HasFailures ignores warnings.
type DiagnosticReport struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	HasFailures bool             `json:"hasFailures"`
	Items       []DiagnosticItem `json:"items"`
}

// Item returns the check with the given ID.
func (r DiagnosticReport) Item(id string) (DiagnosticItem, bool) {
	for _, item := range r.Items {
		if item.ID == id {
			return item, true
		}
	}
	return DiagnosticItem{}, false
}
