package prompt

import (
	"strings"
	"testing"

	"github.com/nayeemhs/uniassist/internal/catalog"
	"github.com/nayeemhs/uniassist/internal/domain"
)

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load failed: %v", err)
	}
	return NewAssembler(cat)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestSystemPromptWithBoundProfile(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	bound := &domain.StudentProfile{
		ID:                      7,
		Name:                    strPtr("Rahim Ahmed"),
		AcademicGroup:           strPtr(domain.GroupScience),
		GPA:                     floatPtr(4.5),
		InterestedDepartment:    strPtr("CSE"),
		PreferredUniversityType: strPtr(domain.TypePublic),
	}

	got := a.SystemPrompt(bound, &domain.StudentProfile{})

	if !strings.Contains(got, "Student Profile (from database):") {
		t.Error("Expected bound profile block header")
	}
	for _, want := range []string{
		"- Name: Rahim Ahmed",
		"- Academic Group: Science",
		"- GPA: 4.5",
		"- Interested Department: CSE",
		"- Preferred University Type: Public",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if strings.Contains(got, "Student Information (just provided)") {
		t.Error("Bound profile must take precedence over extracted fields")
	}
}

func TestSystemPromptBoundProfileMissingFields(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	bound := &domain.StudentProfile{ID: 3, GPA: floatPtr(4.0)}

	got := a.SystemPrompt(bound, nil)

	if !strings.Contains(got, "- Name: Not provided") {
		t.Error("Expected missing name rendered as Not provided")
	}
	if !strings.Contains(got, "- GPA: 4") {
		t.Error("Expected set GPA to be rendered")
	}
}

func TestSystemPromptWithExtractedFields(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	extracted := &domain.StudentProfile{
		GPA:           floatPtr(4.7),
		AcademicGroup: strPtr(domain.GroupScience),
	}

	got := a.SystemPrompt(nil, extracted)

	if !strings.Contains(got, "Student Information (just provided):") {
		t.Error("Expected extracted info block header")
	}
	if !strings.Contains(got, "- GPA: 4.7") {
		t.Error("Expected extracted GPA in context block")
	}
	if strings.Contains(got, "Not provided") {
		t.Error("Extracted block must only list the fields that were found")
	}
	if !strings.Contains(got, "saved") {
		t.Error("Expected a note that the information was saved")
	}
}

func TestSystemPromptWithoutContext(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	got := a.SystemPrompt(nil, &domain.StudentProfile{})

	if strings.Contains(got, "Student Profile (from database)") {
		t.Error("Unexpected bound profile block")
	}
	if strings.Contains(got, "Student Information (just provided)") {
		t.Error("Unexpected extracted info block")
	}
	if !strings.Contains(got, "Available Universities in Bangladesh:") {
		t.Error("Expected the catalog section")
	}
	if !strings.Contains(got, `admission_status is "Open"`) {
		t.Error("Expected the behavioral rules")
	}
}

func TestSystemPromptAlwaysContainsFullCatalog(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load failed: %v", err)
	}
	a := NewAssembler(cat)

	got := a.SystemPrompt(nil, nil)
	for _, u := range cat.Universities() {
		if !strings.Contains(got, u.Name) {
			t.Errorf("Expected catalog entry %q in prompt", u.Name)
		}
	}
}

func TestMessagesDropLastHistoryEntry(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	history := []domain.Turn{
		{Role: "user", Content: "A"},
		{Role: "ai", Content: "B"},
		{Role: "user", Content: "C"},
	}

	got := a.Messages("system text", history, "C")

	if len(got) != 4 {
		t.Fatalf("Expected 4 messages, got %d", len(got))
	}
	if got[0].Role != domain.RoleSystem || got[0].Content != "system text" {
		t.Errorf("Expected system message first, got %+v", got[0])
	}
	if got[1].Content != "A" || got[1].Role != domain.RoleUser {
		t.Errorf("Expected first history turn, got %+v", got[1])
	}
	if got[2].Content != "B" || got[2].Role != domain.RoleAssistant {
		t.Errorf("Expected normalized assistant turn, got %+v", got[2])
	}
	last := got[len(got)-1]
	prev := got[len(got)-2]
	if last.Content == "C" && prev.Content == "C" {
		t.Error("Current message must not be duplicated from history")
	}
	if last.Role != domain.RoleUser || last.Content != "C" {
		t.Errorf("Expected current message last, got %+v", last)
	}
}

func TestMessagesEmptyHistory(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	got := a.Messages("sys", nil, "hello")

	if len(got) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(got))
	}
	if got[1].Role != domain.RoleUser || got[1].Content != "hello" {
		t.Errorf("Expected user message last, got %+v", got[1])
	}
}
