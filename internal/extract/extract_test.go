package extract

import (
	"testing"
)

func TestExtractGPA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    float64
		wantSet bool
	}{
		{
			name:    "keyword with is",
			message: "My gpa is 4.5",
			want:    4.5,
			wantSet: true,
		},
		{
			name:    "keyword with colon",
			message: "result: 4.8 in HSC",
			want:    4.8,
			wantSet: true,
		},
		{
			name:    "scored phrase",
			message: "I scored 4.7 gpa this year",
			want:    4.7,
			wantSet: true,
		},
		{
			name:    "have a phrase",
			message: "I have a 3.9 gpa",
			want:    3.9,
			wantSet: true,
		},
		{
			name:    "bare number gpa",
			message: "with 4.2 gpa what are my options",
			want:    4.2,
			wantSet: true,
		},
		{
			name:    "integer value",
			message: "my score is 5",
			want:    5,
			wantSet: true,
		},
		{
			name:    "out of range rejected",
			message: "my gpa is 5.5",
			wantSet: false,
		},
		{
			name:    "out of range falls through to later pattern",
			message: "my gpa is 5.5 but officially I scored 4.7 gpa",
			want:    4.7,
			wantSet: true,
		},
		{
			name:    "no gpa mentioned",
			message: "which universities offer CSE?",
			wantSet: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.message)
			if tt.wantSet {
				if got.GPA == nil {
					t.Fatalf("Expected gpa %v, got unset", tt.want)
				}
				if *got.GPA != tt.want {
					t.Errorf("Expected gpa %v, got %v", tt.want, *got.GPA)
				}
			} else if got.GPA != nil {
				t.Errorf("Expected gpa unset, got %v", *got.GPA)
			}
		})
	}
}

func TestExtractAcademicGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
		wantSet bool
	}{
		{"science keyword", "I am from science background", "Science", true},
		{"commerce keyword", "I studied commerce", "Commerce", true},
		{"business keyword", "business student here", "Commerce", true},
		{"arts keyword", "I'm an arts student", "Arts", true},
		{"humanities keyword", "humanities group", "Arts", true},
		{"science wins over arts", "science and arts both interest me", "Science", true},
		{"case insensitive", "SCIENCE group", "Science", true},
		{"no group", "hello there", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.message)
			if tt.wantSet {
				if got.AcademicGroup == nil {
					t.Fatalf("Expected group %q, got unset", tt.want)
				}
				if *got.AcademicGroup != tt.want {
					t.Errorf("Expected group %q, got %q", tt.want, *got.AcademicGroup)
				}
			} else if got.AcademicGroup != nil {
				t.Errorf("Expected group unset, got %q", *got.AcademicGroup)
			}
		})
	}
}

func TestExtractDepartment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
		wantSet bool
	}{
		{"acronym upper", "I want to study CSE", "CSE", true},
		{"acronym lowercase normalized", "interested in cse", "CSE", true},
		{"canonical spelling", "thinking about economics", "Economics", true},
		{"multi word entry", "civil engineering programs please", "Civil Engineering", true},
		{"earlier vocabulary entry wins", "CSE or EEE, not sure", "CSE", true},
		{"architecture", "I love architecture", "Architecture", true},
		{"no department", "what should I do", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.message)
			if tt.wantSet {
				if got.InterestedDepartment == nil {
					t.Fatalf("Expected department %q, got unset", tt.want)
				}
				if *got.InterestedDepartment != tt.want {
					t.Errorf("Expected department %q, got %q", tt.want, *got.InterestedDepartment)
				}
			} else if got.InterestedDepartment != nil {
				t.Errorf("Expected department unset, got %q", *got.InterestedDepartment)
			}
		})
	}
}

func TestExtractUniversityType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
		wantSet bool
	}{
		{"public", "only public universities", "Public", true},
		{"govt", "govt university please", "Public", true},
		{"government", "a government institution", "Public", true},
		{"private", "private universities are fine", "Private", true},
		{"public wins when both present", "public or private, whichever", "Public", true},
		{"none", "any university works", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.message)
			if tt.wantSet {
				if got.PreferredUniversityType == nil {
					t.Fatalf("Expected type %q, got unset", tt.want)
				}
				if *got.PreferredUniversityType != tt.want {
					t.Errorf("Expected type %q, got %q", tt.want, *got.PreferredUniversityType)
				}
			} else if got.PreferredUniversityType != nil {
				t.Errorf("Expected type unset, got %q", *got.PreferredUniversityType)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
		wantSet bool
	}{
		{"my name is", "my name is Rahim Ahmed", "Rahim Ahmed", true},
		{"i am", "Hello, I am Karim", "Karim", true},
		{"i'm", "I'm Nusrat Jahan", "Nusrat Jahan", true},
		{"call me", "you can call me Tarek", "Tarek", true},
		{"this is", "Hi, this is Farhana", "Farhana", true},
		{"title cased output", "my name is RAhim", "Rahim", true},
		{"lowercase name not captured", "i am looking for universities", "", false},
		{"no trigger", "Rahim wants to study CSE", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.message)
			if tt.wantSet {
				if got.Name == nil {
					t.Fatalf("Expected name %q, got unset", tt.want)
				}
				if *got.Name != tt.want {
					t.Errorf("Expected name %q, got %q", tt.want, *got.Name)
				}
			} else if got.Name != nil {
				t.Errorf("Expected name unset, got %q", *got.Name)
			}
		})
	}
}

func TestExtractFieldsAreIndependent(t *testing.T) {
	t.Parallel()

	got := Extract("I'm from science background and interested in CSE")
	if got.AcademicGroup == nil || *got.AcademicGroup != "Science" {
		t.Errorf("Expected group Science, got %v", got.AcademicGroup)
	}
	if got.InterestedDepartment == nil || *got.InterestedDepartment != "CSE" {
		t.Errorf("Expected department CSE, got %v", got.InterestedDepartment)
	}
}

func TestExtractEmptyMessage(t *testing.T) {
	t.Parallel()

	got := Extract("")
	if !got.IsEmpty() {
		t.Errorf("Expected empty extraction for empty message, got %+v", got)
	}
}
