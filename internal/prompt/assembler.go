// Package prompt builds the system instructions and the ordered message list
// sent to the language model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/nayeemhs/uniassist/internal/catalog"
	"github.com/nayeemhs/uniassist/internal/domain"
)

// notProvided is rendered for profile fields without a value.
const notProvided = "Not provided"

// Assembler renders system prompts from the static catalog and the student's
// known profile facts.
type Assembler struct {
	catalog *catalog.Catalog
}

// NewAssembler creates an assembler over the given catalog.
func NewAssembler(c *catalog.Catalog) *Assembler {
	return &Assembler{catalog: c}
}

// SystemPrompt builds the full system instructions: role framing, the complete
// university catalog, the student context block, and the behavioral rules.
//
// A bound (database-resolved) profile takes precedence over just-extracted
// fields. The catalog is serialized in full; filtering by GPA, department and
// type is the model's responsibility per the rules below.
func (a *Assembler) SystemPrompt(bound, extracted *domain.StudentProfile) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful AI admission assistant for Bangladeshi students looking for university guidance.\n\n")
	sb.WriteString("Available Universities in Bangladesh:\n")
	sb.WriteString(a.catalog.JSON())
	sb.WriteString("\n\n")

	if block := contextBlock(bound, extracted); block != "" {
		sb.WriteString(block)
		sb.WriteString("\n")
	}

	sb.WriteString(`Your responsibilities:
1. Only recommend universities where admission_status is "Open"
2. Only recommend universities where the student's GPA meets the minimum_gpa requirement
3. If a student asks about a department, show all universities offering that department
4. If a student asks about public/private universities, filter accordingly
5. Group your recommendations by university type (Public / Private)
6. Always state the minimum GPA requirement for every university you mention
7. On follow-up questions, use the earlier turns of this conversation for context

If you don't have information about the student's GPA, academic group, or department preference, politely ask for it. Be friendly, encouraging, and helpful, and provide specific recommendations with reasons.`)

	return sb.String()
}

// Messages returns the ordered message list for the model:
// system prompt, prior history with its last element dropped, then the current
// user message. Dropping the last history element avoids double-submitting the
// just-sent message when the caller includes it in the history.
func (a *Assembler) Messages(systemPrompt string, history []domain.Turn, current string) []domain.Turn {
	prior := history
	if len(prior) > 0 {
		prior = prior[:len(prior)-1]
	}

	messages := make([]domain.Turn, 0, len(prior)+2)
	messages = append(messages, domain.Turn{Role: domain.RoleSystem, Content: systemPrompt})
	for _, turn := range prior {
		messages = append(messages, domain.Turn{
			Role:    domain.NormalizeRole(turn.Role),
			Content: turn.Content,
		})
	}
	messages = append(messages, domain.Turn{Role: domain.RoleUser, Content: current})
	return messages
}

// contextBlock renders the known profile facts. Bound profiles list all five
// fields; just-extracted profiles list only the fields that were found.
func contextBlock(bound, extracted *domain.StudentProfile) string {
	if bound != nil {
		var sb strings.Builder
		sb.WriteString("Student Profile (from database):\n")
		sb.WriteString("- Name: " + stringOr(bound.Name) + "\n")
		sb.WriteString("- Academic Group: " + stringOr(bound.AcademicGroup) + "\n")
		sb.WriteString("- GPA: " + floatOr(bound.GPA) + "\n")
		sb.WriteString("- Interested Department: " + stringOr(bound.InterestedDepartment) + "\n")
		sb.WriteString("- Preferred University Type: " + stringOr(bound.PreferredUniversityType) + "\n")
		return sb.String()
	}

	if !extracted.IsEmpty() {
		var sb strings.Builder
		sb.WriteString("Student Information (just provided):\n")
		if extracted.Name != nil {
			sb.WriteString("- Name: " + *extracted.Name + "\n")
		}
		if extracted.AcademicGroup != nil {
			sb.WriteString("- Academic Group: " + *extracted.AcademicGroup + "\n")
		}
		if extracted.GPA != nil {
			sb.WriteString("- GPA: " + formatGPA(*extracted.GPA) + "\n")
		}
		if extracted.InterestedDepartment != nil {
			sb.WriteString("- Interested Department: " + *extracted.InterestedDepartment + "\n")
		}
		if extracted.PreferredUniversityType != nil {
			sb.WriteString("- Preferred University Type: " + *extracted.PreferredUniversityType + "\n")
		}
		sb.WriteString("(This information has been saved to the student's profile.)\n")
		return sb.String()
	}

	return ""
}

func stringOr(s *string) string {
	if s == nil || *s == "" {
		return notProvided
	}
	return *s
}

func floatOr(f *float64) string {
	if f == nil {
		return notProvided
	}
	return formatGPA(*f)
}

func formatGPA(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
