// Package domain contains core domain types for the admission assistant.
package domain

import (
	"time"
)

// Academic group values recognized by the extractor.
const (
	GroupScience  = "Science"
	GroupCommerce = "Commerce"
	GroupArts     = "Arts"
)

// University type values.
const (
	TypePublic  = "Public"
	TypePrivate = "Private"
)

// StudentProfile represents a student record. All profile fields are optional;
// a nil pointer means the field was never provided or extracted.
type StudentProfile struct {
	ID                      int64    `json:"id,omitempty"`
	Name                    *string  `json:"name,omitempty"`
	AcademicGroup           *string  `json:"academic_group,omitempty"`
	GPA                     *float64 `json:"gpa,omitempty"`
	InterestedDepartment    *string  `json:"interested_department,omitempty"`
	PreferredUniversityType *string  `json:"preferred_university_type,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// IsEmpty returns true if no profile field is set.
func (p *StudentProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == nil &&
		p.AcademicGroup == nil &&
		p.GPA == nil &&
		p.InterestedDepartment == nil &&
		p.PreferredUniversityType == nil
}

// Merge copies non-nil fields from other into p. Fields already set on p are
// overwritten only when other provides a value.
func (p *StudentProfile) Merge(other *StudentProfile) {
	if other == nil {
		return
	}
	if other.Name != nil {
		p.Name = other.Name
	}
	if other.AcademicGroup != nil {
		p.AcademicGroup = other.AcademicGroup
	}
	if other.GPA != nil {
		p.GPA = other.GPA
	}
	if other.InterestedDepartment != nil {
		p.InterestedDepartment = other.InterestedDepartment
	}
	if other.PreferredUniversityType != nil {
		p.PreferredUniversityType = other.PreferredUniversityType
	}
}
