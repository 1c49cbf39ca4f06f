// Package extract turns free-text chat messages into structured student
// profile fields.
//
// Each field is extracted independently through an ordered list of matchers;
// the first matcher that succeeds wins and later matchers for that field are
// not consulted. A message with no matching tokens yields an empty profile,
// which is a normal result, not an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/nayeemhs/uniassist/internal/domain"
)

// gpaMatcher pairs a pattern with its value validation. Patterns are tried in
// order; a matched but out-of-range value does not stop the cascade.
type gpaMatcher struct {
	re       *regexp.Regexp
	validate func(float64) bool
}

func gpaInRange(v float64) bool {
	return v >= 0 && v <= 5.0
}

var gpaMatchers = []gpaMatcher{
	// "gpa is 4.5", "result: 4.8", "score 4"
	{regexp.MustCompile(`(?i)\b(?:gpa|result|score)\s*(?:is|:)?\s*([0-9]+(?:\.[0-9]+)?)`), gpaInRange},
	// "I have a 4.5 gpa", "I scored 4.7 gpa"
	{regexp.MustCompile(`(?i)\bi\s+(?:have|got|scored)\s+(?:a\s+)?([0-9]+(?:\.[0-9]+)?)\s*gpa\b`), gpaInRange},
	// bare "4.5 gpa"
	{regexp.MustCompile(`(?i)\b([0-9]+(?:\.[0-9]+)?)\s*gpa\b`), gpaInRange},
}

// groupMatcher maps a keyword set to its canonical academic group.
type groupMatcher struct {
	group string
	re    *regexp.Regexp
}

var groupMatchers = []groupMatcher{
	{domain.GroupScience, regexp.MustCompile(`(?i)\bscience\b`)},
	{domain.GroupCommerce, regexp.MustCompile(`(?i)\b(?:commerce|business)\b`)},
	{domain.GroupArts, regexp.MustCompile(`(?i)\b(?:arts|humanities)\b`)},
}

// departmentMatcher pairs the canonical vocabulary spelling with its pattern.
// Order matters: the first vocabulary entry matched wins.
type departmentMatcher struct {
	canonical string
	re        *regexp.Regexp
}

var departmentMatchers = buildDepartmentMatchers([]string{
	"CSE", "EEE", "BBA", "English", "Economics", "ME", "CE", "IPE",
	"Architecture", "Physics", "Chemistry",
	"Civil Engineering", "Mechanical Engineering", "Electrical Engineering",
})

func buildDepartmentMatchers(vocabulary []string) []departmentMatcher {
	matchers := make([]departmentMatcher, 0, len(vocabulary))
	for _, entry := range vocabulary {
		pattern := `(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(entry), ` `, `\s+`) + `\b`
		matchers = append(matchers, departmentMatcher{
			canonical: entry,
			re:        regexp.MustCompile(pattern),
		})
	}
	return matchers
}

var (
	publicTypeRe  = regexp.MustCompile(`(?i)\b(?:public|govt|government)\b`)
	privateTypeRe = regexp.MustCompile(`(?i)\bprivate\b`)
)

// Name triggers are case-insensitive, but the captured name itself must look
// like capitalized word tokens so that "I am interested in CSE" does not
// produce a name.
var nameMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i:\b(?:my name is|i am|i['’]m|call me)\s+)([A-Z][a-zA-Z'-]*(?:\s+[A-Z][a-zA-Z'-]*)*)`),
	regexp.MustCompile(`(?i:\b(?:this is|speaking is)\s+)([A-Z][a-zA-Z'-]*(?:\s+[A-Z][a-zA-Z'-]*)*)`),
}

// Extract parses message and returns the profile fields it mentions.
// It is deterministic, performs no I/O, and never fails: unextractable
// fields are simply left unset.
func Extract(message string) *domain.StudentProfile {
	profile := &domain.StudentProfile{}

	if gpa, ok := extractGPA(message); ok {
		profile.GPA = &gpa
	}
	if group, ok := extractGroup(message); ok {
		profile.AcademicGroup = &group
	}
	if dept, ok := extractDepartment(message); ok {
		profile.InterestedDepartment = &dept
	}
	if utype, ok := extractUniversityType(message); ok {
		profile.PreferredUniversityType = &utype
	}
	if name, ok := extractName(message); ok {
		profile.Name = &name
	}

	return profile
}

func extractGPA(message string) (float64, bool) {
	for _, m := range gpaMatchers {
		match := m.re.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil || !m.validate(value) {
			// Out-of-domain value: fall through to the next pattern.
			continue
		}
		return value, true
	}
	return 0, false
}

func extractGroup(message string) (string, bool) {
	for _, m := range groupMatchers {
		if m.re.MatchString(message) {
			return m.group, true
		}
	}
	return "", false
}

func extractDepartment(message string) (string, bool) {
	for _, m := range departmentMatchers {
		match := m.re.FindString(message)
		if match == "" {
			continue
		}
		// Short tokens are acronyms and stored upper-cased; longer matches
		// take the canonical vocabulary spelling.
		if len(match) <= 3 {
			return strings.ToUpper(match), true
		}
		return m.canonical, true
	}
	return "", false
}

func extractUniversityType(message string) (string, bool) {
	if publicTypeRe.MatchString(message) {
		return domain.TypePublic, true
	}
	if privateTypeRe.MatchString(message) {
		return domain.TypePrivate, true
	}
	return "", false
}

func extractName(message string) (string, bool) {
	for _, re := range nameMatchers {
		match := re.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		name := titleCase(strings.TrimSpace(match[1]))
		if name == "" {
			continue
		}
		return name, true
	}
	return "", false
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
