// Package resume holds the resume document model: a typed record over an
// open JSON schema where every section except contact info is optional.
package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"resumecrafter/internal/errors"
)

// Top-level document keys, in canonical render order.
const (
	SectionContactInfo    = "contact_info"
	SectionTargetRole     = "target_role"
	SectionSummary        = "professional_summary"
	SectionExperience     = "work_experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// SectionOrder lists the canonical sections in the order documents carry them.
var SectionOrder = []string{
	SectionContactInfo,
	SectionTargetRole,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
}

// ContactInfo identifies the candidate. Name is the only field the
// application requires; the rest render when present.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

func (c ContactInfo) IsZero() bool {
	return c.Name == "" && c.Email == "" && c.Phone == "" && c.Location == "" && c.LinkedIn == ""
}

// ExperienceEntry is one work-history position.
type ExperienceEntry struct {
	JobTitle     string   `json:"job_title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Dates        string   `json:"dates,omitempty"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// EducationEntry is one degree or program.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	Honors      string `json:"honors,omitempty"`
}

// ProjectEntry is one portfolio project.
type ProjectEntry struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Record is a resume document. Every field but ContactInfo is optional;
// absence is always valid and simply renders nothing. Decoding also records
// which top-level keys the source document carried, including keys outside
// the canonical schema, so comparisons can detect fabricated sections.
type Record struct {
	ContactInfo         ContactInfo       `json:"contact_info"`
	TargetRole          string            `json:"target_role,omitempty"`
	ProfessionalSummary string            `json:"professional_summary,omitempty"`
	WorkExperience      []ExperienceEntry `json:"work_experience,omitempty"`
	Education           []EducationEntry  `json:"education,omitempty"`
	Skills              Skills            `json:"skills,omitempty"`
	Projects            []ProjectEntry    `json:"projects,omitempty"`
	Certifications      []string          `json:"certifications,omitempty"`

	presentKeys []string
}

// ParseRecord decodes a resume document. Malformed JSON and a skills field
// of the wrong shape are the only errors; missing sections never are.
func ParseRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"resume document is not a valid JSON object", err)
	}
	return &rec, nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{presentKeys: topLevelKeys(data)}
	for key, val := range raw {
		var err error
		switch key {
		case SectionContactInfo:
			err = json.Unmarshal(val, &r.ContactInfo)
		case SectionTargetRole:
			err = json.Unmarshal(val, &r.TargetRole)
		case SectionSummary:
			err = json.Unmarshal(val, &r.ProfessionalSummary)
		case SectionExperience:
			err = json.Unmarshal(val, &r.WorkExperience)
		case SectionEducation:
			err = json.Unmarshal(val, &r.Education)
		case SectionSkills:
			err = json.Unmarshal(val, &r.Skills)
		case SectionProjects:
			err = json.Unmarshal(val, &r.Projects)
		case SectionCertifications:
			err = json.Unmarshal(val, &r.Certifications)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON writes sections in canonical order, skipping empty ones.
// Contact info is always present.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v any) error {
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	if err := write(SectionContactInfo, r.ContactInfo); err != nil {
		return nil, err
	}
	fields := []struct {
		key     string
		present bool
		value   any
	}{
		{SectionTargetRole, r.HasTargetRole(), r.TargetRole},
		{SectionSummary, r.HasSummary(), r.ProfessionalSummary},
		{SectionExperience, r.HasExperience(), r.WorkExperience},
		{SectionEducation, r.HasEducation(), r.Education},
		{SectionSkills, r.HasSkills(), r.Skills},
		{SectionProjects, r.HasProjects(), r.Projects},
		{SectionCertifications, r.HasCertifications(), r.Certifications},
	}
	for _, f := range fields {
		if !f.present {
			continue
		}
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SectionKeys reports the top-level keys of the source document in document
// order. For records built in code it falls back to the non-empty sections.
func (r *Record) SectionKeys() []string {
	if r.presentKeys != nil {
		return append([]string(nil), r.presentKeys...)
	}
	var keys []string
	if !r.ContactInfo.IsZero() {
		keys = append(keys, SectionContactInfo)
	}
	for _, key := range SectionOrder[1:] {
		if r.hasSectionContent(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func (r *Record) HasSection(key string) bool {
	for _, k := range r.SectionKeys() {
		if k == key {
			return true
		}
	}
	return false
}

func (r *Record) hasSectionContent(key string) bool {
	switch key {
	case SectionContactInfo:
		return !r.ContactInfo.IsZero()
	case SectionTargetRole:
		return r.HasTargetRole()
	case SectionSummary:
		return r.HasSummary()
	case SectionExperience:
		return r.HasExperience()
	case SectionEducation:
		return r.HasEducation()
	case SectionSkills:
		return r.HasSkills()
	case SectionProjects:
		return r.HasProjects()
	case SectionCertifications:
		return r.HasCertifications()
	}
	return false
}

// Presence predicates: a section renders only when it has content left
// after trimming.

func (r *Record) HasTargetRole() bool { return strings.TrimSpace(r.TargetRole) != "" }

func (r *Record) HasSummary() bool { return strings.TrimSpace(r.ProfessionalSummary) != "" }

func (r *Record) HasExperience() bool { return len(r.WorkExperience) > 0 }

func (r *Record) HasEducation() bool { return len(r.Education) > 0 }

func (r *Record) HasSkills() bool { return !r.Skills.IsEmpty() }

func (r *Record) HasProjects() bool { return len(r.Projects) > 0 }

func (r *Record) HasCertifications() bool { return len(r.Certifications) > 0 }

// ValidateSectionKeys rejects keys that do not name a known section.
func ValidateSectionKeys(keys []string) error {
	known := make(map[string]bool, len(SectionOrder))
	for _, k := range SectionOrder {
		known[k] = true
	}
	for _, k := range keys {
		if !known[k] {
			return errors.NewValidationError(errors.ErrCodeInvalidFormat,
				fmt.Sprintf("unknown section %q", k), nil)
		}
	}
	return nil
}

// FilterSections copies the record keeping only the selected sections.
// Contact info and the target role always survive filtering.
func (r *Record) FilterSections(keys []string) *Record {
	keep := make(map[string]bool, len(keys))
	for _, k := range keys {
		keep[k] = true
	}

	out := &Record{
		ContactInfo: r.ContactInfo,
		TargetRole:  r.TargetRole,
	}
	if keep[SectionSummary] {
		out.ProfessionalSummary = r.ProfessionalSummary
	}
	if keep[SectionExperience] {
		out.WorkExperience = append([]ExperienceEntry(nil), r.WorkExperience...)
	}
	if keep[SectionEducation] {
		out.Education = append([]EducationEntry(nil), r.Education...)
	}
	if keep[SectionSkills] {
		out.Skills = r.Skills
	}
	if keep[SectionProjects] {
		out.Projects = append([]ProjectEntry(nil), r.Projects...)
	}
	if keep[SectionCertifications] {
		out.Certifications = append([]string(nil), r.Certifications...)
	}
	return out
}
