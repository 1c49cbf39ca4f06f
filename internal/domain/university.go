package domain

// Admission status values for a university.
const (
	AdmissionOpen   = "Open"
	AdmissionClosed = "Closed"
)

// University is a read-only reference entry from the static catalog.
// The catalog is loaded once at startup and never mutated at runtime.
type University struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Departments     []string `json:"departments"`
	MinimumGPA      float64  `json:"minimum_gpa"`
	AdmissionStatus string   `json:"admission_status"`
	Location        string   `json:"location,omitempty"`
}

// AdmissionOpenNow returns true if the university is currently accepting applications.
func (u *University) AdmissionOpenNow() bool {
	return u.AdmissionStatus == AdmissionOpen
}
