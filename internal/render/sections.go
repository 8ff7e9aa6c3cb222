package render

import (
	"strings"

	"resumecrafter/internal/resume"
)

// Fixed per-field contact prefixes, joined in fixed order.
const (
	labelEmail    = "Email:"
	labelPhone    = "Phone:"
	labelLocation = "Location:"
	labelLinkedIn = "LinkedIn:"
)

const bulletGlyph = "•"

// skillColumns is the fixed column count of the flat-skills table.
const skillColumns = 3

// ContactBlocks renders the document header: the uppercased name and, when
// any of email/phone/location/linkedin is present, one contact line joined
// with " | " in fixed field order. A record without a name renders nothing.
func ContactBlocks(c resume.ContactInfo) []Block {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil
	}

	blocks := []Block{Heading(StyleHeader, strings.ToUpper(name))}

	var parts []string
	for _, field := range []struct{ label, value string }{
		{labelEmail, c.Email},
		{labelPhone, c.Phone},
		{labelLocation, c.Location},
		{labelLinkedIn, c.LinkedIn},
	} {
		if v := strings.TrimSpace(field.value); v != "" {
			parts = append(parts, field.label+" "+v)
		}
	}
	if len(parts) > 0 {
		blocks = append(blocks, Paragraph(StyleContact, Text(strings.Join(parts, " | "))))
	}
	return blocks
}

// ExperienceBlocks renders each position as a job-title paragraph, a
// company line joining company (bold), dates and location with " | ", and a
// bullet list of achievements. Blank parts are omitted rather than leaving
// empty separators.
func ExperienceBlocks(entries []resume.ExperienceEntry) []Block {
	var blocks []Block
	for _, exp := range entries {
		if title := strings.TrimSpace(exp.JobTitle); title != "" {
			blocks = append(blocks, Paragraph(StyleJobTitle, Text(title)))
		}

		var spans []Span
		if company := strings.TrimSpace(exp.Company); company != "" {
			spans = append(spans, BoldText(company))
		}
		if dates := strings.TrimSpace(exp.Dates); dates != "" {
			spans = append(spans, Text(dates))
		}
		if location := strings.TrimSpace(exp.Location); location != "" {
			spans = append(spans, Text(location))
		}
		if len(spans) > 0 {
			blocks = append(blocks, Paragraph(StyleCompany, joinSpans(" | ", spans)...))
		}

		if items := nonBlank(exp.Achievements); len(items) > 0 {
			blocks = append(blocks, BulletList(StyleBullet, items))
		}
	}
	return blocks
}

// EducationBlocks renders each entry as one paragraph joining degree
// (bold), institution, "(year)" and honors (italic) with ", ". Entries with
// nothing present are skipped.
func EducationBlocks(entries []resume.EducationEntry) []Block {
	var blocks []Block
	for _, edu := range entries {
		var spans []Span
		if degree := strings.TrimSpace(edu.Degree); degree != "" {
			spans = append(spans, BoldText(degree))
		}
		if inst := strings.TrimSpace(edu.Institution); inst != "" {
			spans = append(spans, Text(inst))
		}
		if year := strings.TrimSpace(edu.Year); year != "" {
			spans = append(spans, Text("("+year+")"))
		}
		if honors := strings.TrimSpace(edu.Honors); honors != "" {
			spans = append(spans, ItalicText(honors))
		}
		if len(spans) > 0 {
			blocks = append(blocks, Paragraph(StyleBody, joinSpans(", ", spans)...))
		}
	}
	return blocks
}

// SkillsBlocks renders the categorized shape as an uppercased category
// label plus a comma-joined paragraph per non-empty category, and the flat
// shape as a table of exactly three columns, the last row padded with empty
// cells.
func SkillsBlocks(s resume.Skills) []Block {
	if s.IsEmpty() {
		return nil
	}

	if s.Kind() == resume.SkillsCategorized {
		var blocks []Block
		for _, category := range s.OrderedCategories() {
			skills := s.Categories[category]
			if len(skills) == 0 {
				continue
			}
			blocks = append(blocks,
				Paragraph(StyleSkillCategory, Text(strings.ToUpper(category))),
				Paragraph(StyleBody, Text(strings.Join(skills, ", "))),
			)
		}
		return blocks
	}

	var rows [][]string
	for i := 0; i < len(s.Flat); i += skillColumns {
		row := make([]string, skillColumns)
		copy(row, s.Flat[i:min(i+skillColumns, len(s.Flat))])
		rows = append(rows, row)
	}
	return []Block{Table(StyleSkillTable, rows)}
}

// ProjectBlocks renders each project as a bold name paragraph, a
// description paragraph and, when technologies are present, an italic
// "Technologies: ..." paragraph.
func ProjectBlocks(projects []resume.ProjectEntry) []Block {
	var blocks []Block
	for _, proj := range projects {
		if name := strings.TrimSpace(proj.Name); name != "" {
			blocks = append(blocks, Paragraph(StyleJobTitle, BoldText(name)))
		}
		if desc := strings.TrimSpace(proj.Description); desc != "" {
			blocks = append(blocks, Paragraph(StyleBody, Text(desc)))
		}
		if techs := nonBlank(proj.Technologies); len(techs) > 0 {
			blocks = append(blocks, Paragraph(StyleTechnologies,
				ItalicText("Technologies: "+strings.Join(techs, ", "))))
		}
	}
	return blocks
}

// CertificationBlocks renders one bullet-prefixed paragraph per
// certification, in order.
func CertificationBlocks(certs []string) []Block {
	var blocks []Block
	for _, cert := range certs {
		if c := strings.TrimSpace(cert); c != "" {
			blocks = append(blocks, Paragraph(StyleBody, Text(bulletGlyph+" "+c)))
		}
	}
	return blocks
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
