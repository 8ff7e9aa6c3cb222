package document

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"resumecrafter/internal/render"
	"resumecrafter/internal/resume"
)

func headings(blocks []render.Block) []string {
	var out []string
	for _, b := range blocks {
		if b.Kind == render.BlockHeading && b.Style == render.StyleSection {
			out = append(out, b.Text())
		}
	}
	return out
}

func texts(blocks []render.Block) []string {
	var out []string
	for _, b := range blocks {
		if t := b.Text(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func TestBuildResumeSectionOrder(t *testing.T) {
	blocks := BuildResume(resume.SampleRecord())

	want := []string{
		"PROFESSIONAL SUMMARY",
		"PROFESSIONAL EXPERIENCE",
		"EDUCATION",
		"SKILLS",
		"PROJECTS",
		"CERTIFICATIONS",
	}
	if got := headings(blocks); !reflect.DeepEqual(got, want) {
		t.Errorf("expected section headings %v, got %v", want, got)
	}

	if blocks[0].Kind != render.BlockHeading || blocks[0].Text() != "JOHN DOE" {
		t.Errorf("expected name header first, got %+v", blocks[0])
	}

	last := blocks[len(blocks)-1]
	if last.Style != render.StyleFooter || last.Text() != "Generated by AI Resume Optimizer" {
		t.Errorf("expected footer attribution last, got %+v", last)
	}
}

func TestBuildResumeUppercasesTargetRole(t *testing.T) {
	rec := &resume.Record{
		ContactInfo: resume.ContactInfo{Name: "Jane Doe"},
		TargetRole:  "Staff Engineer",
	}

	blocks := BuildResume(rec)

	found := false
	for _, b := range blocks {
		if b.Style == render.StyleRole {
			found = true
			if b.Text() != "STAFF ENGINEER" {
				t.Errorf("expected uppercased role, got %q", b.Text())
			}
		}
	}
	if !found {
		t.Error("target-role line missing")
	}
}

func TestBuildResumeOmitsEmptySections(t *testing.T) {
	rec := &resume.Record{
		ContactInfo:    resume.ContactInfo{Name: "Jane Doe"},
		Certifications: []string{"CKA"},
	}

	blocks := BuildResume(rec)

	if got := headings(blocks); !reflect.DeepEqual(got, []string{"CERTIFICATIONS"}) {
		t.Errorf("expected only the certifications heading, got %v", got)
	}
	for _, b := range blocks {
		if b.Kind == render.BlockParagraph && strings.TrimSpace(b.Text()) == "" {
			t.Error("assembler emitted an empty paragraph")
		}
	}
}

func TestBuildResumeDeterministic(t *testing.T) {
	rec := resume.SampleRecord()

	first := BuildResume(rec)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, BuildResume(rec)) {
			t.Fatal("identical input produced different block sequences")
		}
	}
}

func TestBuildCoverLetter(t *testing.T) {
	rec := resume.SampleRecord()
	body := "I am excited to apply for this role.\n\n" +
		"My experience maps directly onto your needs.\n\n" +
		"Sincerely,\nJohn Doe"
	date := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	blocks := BuildCoverLetter(rec, body, "Innovative Tech Solutions", date)
	all := texts(blocks)

	wantOrder := []string{
		"John Doe",
		"john.doe@example.com | (555) 123-4567 | San Francisco, CA",
		"March 9, 2026",
		"Innovative Tech Solutions",
		"[Company Address]",
		"Dear Hiring Manager,",
		"I am excited to apply for this role.",
		"My experience maps directly onto your needs.",
		"Sincerely,",
		"John Doe",
		"Generated by AI Resume Optimizer",
	}
	if !reflect.DeepEqual(all, wantOrder) {
		t.Errorf("unexpected cover letter sequence:\n got %q\nwant %q", all, wantOrder)
	}
}

func TestBuildCoverLetterWithoutCompany(t *testing.T) {
	blocks := BuildCoverLetter(resume.SampleRecord(), "Body paragraph.", "  ", time.Now())

	for _, b := range blocks {
		if b.Text() == "[Company Address]" {
			t.Error("company framing emitted without a company name")
		}
	}
}

func TestSplitBody(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "blank-line split with trimming",
			input:    "  first paragraph \n\n\n\nsecond paragraph\n\n",
			expected: []string{"first paragraph", "second paragraph"},
		},
		{
			name:     "sincerely closing is dropped",
			input:    "Thanks for considering me.\n\nSincerely,\nJane",
			expected: []string{"Thanks for considering me."},
		},
		{
			name:     "sincerely filter is case-insensitive",
			input:    "Body.\n\nsincerely yours,\nJane",
			expected: []string{"Body."},
		},
		{
			name:     "sincerely mid-paragraph survives",
			input:    "I sincerely believe this is a fit.",
			expected: []string{"I sincerely believe this is a fit."},
		},
		{
			name:     "empty body",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitBody(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestVariantsShareBlockOrder(t *testing.T) {
	full := Styles(VariantFull)
	plain := Styles(VariantPlain)

	if len(full) != len(plain) {
		t.Fatal("variants must define the same style roles")
	}
	for name, style := range plain {
		if style.Color != "" {
			t.Errorf("plain style %s kept color %s", name, style.Color)
		}
		if style.FontSize != full[name].FontSize {
			t.Errorf("plain style %s changed metrics", name)
		}
	}
}
