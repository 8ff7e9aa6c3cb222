// Package document assembles rendered sections into finished documents and
// writes them to the physical output formats.
package document

import (
	"strings"
	"time"

	"resumecrafter/internal/render"
	"resumecrafter/internal/resume"
)

// Variant selects the style sheet applied by the physical backends. Both
// variants carry the exact same block ordering.
type Variant int

const (
	VariantFull Variant = iota
	VariantPlain
)

const (
	attribution = "Generated by AI Resume Optimizer"
	salutation  = "Dear Hiring Manager,"
	closing     = "Sincerely,"
)

// Styles resolves a variant to its style sheet.
func Styles(v Variant) render.StyleSheet {
	if v == VariantPlain {
		return render.PlainStyles()
	}
	return render.FullStyles()
}

// BuildResume produces the resume block sequence in fixed order: contact
// header, uppercased target-role line, rule, then each non-empty section
// under its heading, then the footer attribution. Sections with no content
// get no heading.
func BuildResume(rec *resume.Record) []render.Block {
	blocks := render.ContactBlocks(rec.ContactInfo)

	if rec.HasTargetRole() {
		blocks = append(blocks, render.Paragraph(render.StyleRole,
			render.Text(strings.ToUpper(strings.TrimSpace(rec.TargetRole)))))
	}
	blocks = append(blocks, render.Rule(), render.Spacer(12))

	sections := []struct {
		title   string
		content []render.Block
	}{
		{"PROFESSIONAL SUMMARY", summaryBlocks(rec)},
		{"PROFESSIONAL EXPERIENCE", render.ExperienceBlocks(rec.WorkExperience)},
		{"EDUCATION", render.EducationBlocks(rec.Education)},
		{"SKILLS", render.SkillsBlocks(rec.Skills)},
		{"PROJECTS", render.ProjectBlocks(rec.Projects)},
		{"CERTIFICATIONS", render.CertificationBlocks(rec.Certifications)},
	}
	for _, section := range sections {
		if len(section.content) == 0 {
			continue
		}
		blocks = append(blocks, render.Heading(render.StyleSection, section.title))
		blocks = append(blocks, section.content...)
		blocks = append(blocks, render.Spacer(8))
	}

	blocks = append(blocks, render.Spacer(20),
		render.Paragraph(render.StyleFooter, render.Text(attribution)))
	return blocks
}

func summaryBlocks(rec *resume.Record) []render.Block {
	if !rec.HasSummary() {
		return nil
	}
	return []render.Block{
		render.Paragraph(render.StyleBody, render.Text(strings.TrimSpace(rec.ProfessionalSummary))),
	}
}

// BuildCoverLetter frames the externally generated body text: sender
// header with contact line and date, optional recipient company line, fixed
// salutation, the filtered body paragraphs, then the closing and footer.
func BuildCoverLetter(rec *resume.Record, body, company string, date time.Time) []render.Block {
	var blocks []render.Block

	name := strings.TrimSpace(rec.ContactInfo.Name)
	if name != "" {
		blocks = append(blocks, render.Heading(render.StyleHeader, name))

		var parts []string
		for _, v := range []string{rec.ContactInfo.Email, rec.ContactInfo.Phone, rec.ContactInfo.Location} {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			blocks = append(blocks, render.Paragraph(render.StyleBody, render.Text(strings.Join(parts, " | "))))
		}
		blocks = append(blocks,
			render.Paragraph(render.StyleBody, render.Text(date.Format("January 2, 2006"))),
			render.Spacer(24))
	}

	if company = strings.TrimSpace(company); company != "" {
		blocks = append(blocks,
			render.Paragraph(render.StyleBody, render.Text(company)),
			render.Paragraph(render.StyleBody, render.Text("[Company Address]")),
			render.Spacer(12))
	}

	blocks = append(blocks,
		render.Paragraph(render.StyleBody, render.Text(salutation)),
		render.Spacer(12))

	for _, para := range SplitBody(body) {
		blocks = append(blocks, render.Paragraph(render.StyleCoverBody, render.Text(para)))
	}

	blocks = append(blocks, render.Spacer(24),
		render.Paragraph(render.StyleBody, render.Text(closing)))
	if name != "" {
		blocks = append(blocks, render.Paragraph(render.StyleBody, render.Text(name)))
	}

	blocks = append(blocks, render.Spacer(20),
		render.Paragraph(render.StyleFooter, render.Text(attribution)))
	return blocks
}

// SplitBody splits generated cover-letter text on blank-line boundaries
// into trimmed paragraphs. Paragraphs starting with "sincerely" in any case
// are dropped, since the assembler appends its own closing.
func SplitBody(text string) []string {
	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(para), "sincerely") {
			continue
		}
		out = append(out, para)
	}
	return out
}
