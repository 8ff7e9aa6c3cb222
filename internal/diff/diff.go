// Package diff validates an optimized resume against its original and
// builds a side-by-side comparison. The fabrication checks are set-based;
// the side-by-side view pairs entries by position.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"resumecrafter/internal/resume"
)

// Status is the outcome of one fabrication check.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
)

// Check names.
const (
	CheckSections       = "sections"
	CheckSkills         = "skills"
	CheckCertifications = "certifications"
	CheckProjects       = "projects"
)

// Placeholder for positions present on only one side.
const absentMarker = "N/A"

// Check is one fabrication check: a warning lists what the optimized
// document added that the original never had.
type Check struct {
	Name    string   `json:"name"`
	Status  Status   `json:"status"`
	Added   []string `json:"added,omitempty"`
	Message string   `json:"message"`
}

// Row pairs the textual rendering of one entry position on both sides.
type Row struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
}

// SectionComparison is the side-by-side view of one canonical section.
type SectionComparison struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Report is the full comparison result. It is a pure value; neither input
// is mutated.
type Report struct {
	Checks   []Check             `json:"checks"`
	Sections []SectionComparison `json:"sections"`
}

// HasWarnings reports whether any fabrication check failed.
func (r *Report) HasWarnings() bool {
	for _, c := range r.Checks {
		if c.Status == StatusWarning {
			return true
		}
	}
	return false
}

// Warnings returns the failed checks.
func (r *Report) Warnings() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Status == StatusWarning {
			out = append(out, c)
		}
	}
	return out
}

var comparedSections = []struct {
	key   string
	title string
}{
	{resume.SectionSummary, "Professional Summary"},
	{resume.SectionExperience, "Work Experience"},
	{resume.SectionEducation, "Education"},
	{resume.SectionSkills, "Skills"},
	{resume.SectionProjects, "Projects"},
	{resume.SectionCertifications, "Certifications"},
}

// Compare parses two resume documents and compares them. The section-set
// check runs over the raw top-level keys, so fabricated sections outside
// the canonical schema are caught too.
func Compare(originalJSON, optimizedJSON []byte) (*Report, error) {
	original, err := resume.ParseRecord(originalJSON)
	if err != nil {
		return nil, err
	}
	optimized, err := resume.ParseRecord(optimizedJSON)
	if err != nil {
		return nil, err
	}
	return CompareRecords(original, optimized), nil
}

// CompareRecords compares two already-decoded records.
func CompareRecords(original, optimized *resume.Record) *Report {
	report := &Report{
		Checks: []Check{sectionCheck(original, optimized)},
	}

	if original.HasSection(resume.SectionSkills) && optimized.HasSection(resume.SectionSkills) {
		report.Checks = append(report.Checks, skillsCheck(original, optimized))
	}
	if original.HasSection(resume.SectionCertifications) && optimized.HasSection(resume.SectionCertifications) {
		report.Checks = append(report.Checks, certificationsCheck(original, optimized))
	}
	if original.HasSection(resume.SectionProjects) && optimized.HasSection(resume.SectionProjects) {
		report.Checks = append(report.Checks, projectsCheck(original, optimized))
	}

	for _, section := range comparedSections {
		if !original.HasSection(section.key) && !optimized.HasSection(section.key) {
			continue
		}
		report.Sections = append(report.Sections, SectionComparison{
			Key:   section.key,
			Title: section.title,
			Rows:  sectionRows(section.key, original, optimized),
		})
	}
	return report
}

func sectionCheck(original, optimized *resume.Record) Check {
	added := subtract(stringSet(optimized.SectionKeys()), stringSet(original.SectionKeys()))
	return buildCheck(CheckSections, added, "sections")
}

func skillsCheck(original, optimized *resume.Record) Check {
	added := subtract(stringSet(optimized.Skills.Flatten()), stringSet(original.Skills.Flatten()))
	return buildCheck(CheckSkills, added, "skills")
}

func certificationsCheck(original, optimized *resume.Record) Check {
	added := subtract(stringSet(optimized.Certifications), stringSet(original.Certifications))
	return buildCheck(CheckCertifications, added, "certifications")
}

// projectsCheck compares by case-insensitive project name.
func projectsCheck(original, optimized *resume.Record) Check {
	added := subtract(projectNames(optimized.Projects), projectNames(original.Projects))
	return buildCheck(CheckProjects, added, "projects")
}

func buildCheck(name string, added []string, noun string) Check {
	if len(added) > 0 {
		return Check{
			Name:   name,
			Status: StatusWarning,
			Added:  added,
			Message: fmt.Sprintf("the optimized resume added %s that weren't in the original: %s",
				noun, strings.Join(added, ", ")),
		}
	}
	return Check{
		Name:    name,
		Status:  StatusOK,
		Message: fmt.Sprintf("no new %s were added to the optimized resume", noun),
	}
}

func stringSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func projectNames(projects []resume.ProjectEntry) map[string]bool {
	set := make(map[string]bool, len(projects))
	for _, p := range projects {
		if p.Name != "" {
			set[strings.ToLower(p.Name)] = true
		}
	}
	return set
}

// subtract returns a-b sorted, so reports are deterministic.
func subtract(a, b map[string]bool) []string {
	var out []string
	for v := range a {
		if !b[v] {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// sectionRows pairs entries positionally up to the longer side; positions
// past the end of one side read "N/A". List pairing is by index only, so a
// reordered list shows as changed rows.
func sectionRows(key string, original, optimized *resume.Record) []Row {
	switch key {
	case resume.SectionSummary, resume.SectionSkills, resume.SectionCertifications:
		return []Row{{
			Original:  scalarSectionText(key, original),
			Optimized: scalarSectionText(key, optimized),
		}}

	case resume.SectionExperience:
		return pairRows(len(original.WorkExperience), len(optimized.WorkExperience),
			func(i int) string { return experienceText(original.WorkExperience[i]) },
			func(i int) string { return experienceText(optimized.WorkExperience[i]) })

	case resume.SectionEducation:
		return pairRows(len(original.Education), len(optimized.Education),
			func(i int) string { return educationText(original.Education[i]) },
			func(i int) string { return educationText(optimized.Education[i]) })

	case resume.SectionProjects:
		return pairRows(len(original.Projects), len(optimized.Projects),
			func(i int) string { return projectText(original.Projects[i]) },
			func(i int) string { return projectText(optimized.Projects[i]) })
	}
	return nil
}

func pairRows(lenA, lenB int, textA, textB func(int) string) []Row {
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	rows := make([]Row, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		row := Row{Original: absentMarker, Optimized: absentMarker}
		if i < lenA {
			row.Original = textA(i)
		}
		if i < lenB {
			row.Optimized = textB(i)
		}
		rows = append(rows, row)
	}
	return rows
}

func scalarSectionText(key string, rec *resume.Record) string {
	switch key {
	case resume.SectionSummary:
		if rec.HasSummary() {
			return strings.TrimSpace(rec.ProfessionalSummary)
		}
	case resume.SectionSkills:
		if rec.HasSkills() {
			return skillsText(rec.Skills)
		}
	case resume.SectionCertifications:
		if rec.HasCertifications() {
			return strings.Join(rec.Certifications, ", ")
		}
	}
	return absentMarker
}

func skillsText(s resume.Skills) string {
	if s.Kind() == resume.SkillsCategorized {
		var lines []string
		for _, category := range s.OrderedCategories() {
			lines = append(lines, category+": "+strings.Join(s.Categories[category], ", "))
		}
		return strings.Join(lines, "\n")
	}
	return strings.Join(s.Flat, ", ")
}

func experienceText(exp resume.ExperienceEntry) string {
	lines := []string{exp.JobTitle, exp.Company + " | " + exp.Dates}
	for _, ach := range exp.Achievements {
		lines = append(lines, "- "+ach)
	}
	return strings.Join(lines, "\n")
}

func educationText(edu resume.EducationEntry) string {
	lines := []string{edu.Degree, edu.Institution + " | " + edu.Year}
	if edu.Honors != "" {
		lines = append(lines, "Honors: "+edu.Honors)
	}
	return strings.Join(lines, "\n")
}

func projectText(proj resume.ProjectEntry) string {
	lines := []string{proj.Name}
	if proj.Description != "" {
		lines = append(lines, proj.Description)
	}
	if len(proj.Technologies) > 0 {
		lines = append(lines, "Technologies: "+strings.Join(proj.Technologies, ", "))
	}
	return strings.Join(lines, "\n")
}
