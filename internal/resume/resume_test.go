package resume

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		check       func(t *testing.T, rec *Record)
	}{
		{
			name: "full document",
			input: `{
				"contact_info": {"name": "Jane Doe", "email": "jane@example.com"},
				"target_role": "Platform Engineer",
				"professional_summary": "Builds reliable systems.",
				"work_experience": [{"job_title": "Engineer", "company": "Acme", "achievements": ["Shipped it"]}],
				"education": [{"degree": "BSc", "institution": "MIT", "year": "2015"}],
				"skills": ["Go", "SQL"],
				"certifications": ["CKA"]
			}`,
			check: func(t *testing.T, rec *Record) {
				if rec.ContactInfo.Name != "Jane Doe" {
					t.Errorf("expected name Jane Doe, got %q", rec.ContactInfo.Name)
				}
				if !rec.HasExperience() || rec.WorkExperience[0].Company != "Acme" {
					t.Error("work experience not decoded")
				}
				if rec.Skills.Kind() != SkillsFlat {
					t.Errorf("expected flat skills, got kind %v", rec.Skills.Kind())
				}
			},
		},
		{
			name:  "minimal document",
			input: `{"contact_info": {"name": "Jane Doe"}}`,
			check: func(t *testing.T, rec *Record) {
				if rec.HasSummary() || rec.HasExperience() || rec.HasSkills() {
					t.Error("empty sections reported as present")
				}
			},
		},
		{
			name:  "unknown keys survive in section set",
			input: `{"contact_info": {"name": "Jane"}, "volunteering": ["Scouts"]}`,
			check: func(t *testing.T, rec *Record) {
				if !rec.HasSection("volunteering") {
					t.Error("unknown section key was dropped")
				}
			},
		},
		{
			name:        "not an object",
			input:       `[1, 2, 3]`,
			expectError: true,
		},
		{
			name:        "malformed skills shape",
			input:       `{"contact_info": {"name": "Jane"}, "skills": "Go"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecord([]byte(tt.input))

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestRecordSectionKeysDocumentOrder(t *testing.T) {
	input := `{"skills": ["Go"], "contact_info": {"name": "Jane"}, "education": []}`

	rec, err := ParseRecord([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"skills", "contact_info", "education"}
	if got := rec.SectionKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
}

func TestRecordMarshalSkipsEmptySections(t *testing.T) {
	rec := &Record{
		ContactInfo:         ContactInfo{Name: "Jane Doe"},
		TargetRole:          "Engineer",
		ProfessionalSummary: "   ",
	}

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := string(out)
	if !strings.Contains(s, `"contact_info"`) || !strings.Contains(s, `"target_role"`) {
		t.Errorf("expected contact info and target role in %s", s)
	}
	for _, absent := range []string{"professional_summary", "work_experience", "skills", "projects"} {
		if strings.Contains(s, absent) {
			t.Errorf("expected %s to be omitted, got %s", absent, s)
		}
	}
}

func TestRecordFilterSections(t *testing.T) {
	rec := SampleRecord()

	filtered := rec.FilterSections([]string{SectionSummary, SectionSkills})

	if filtered.ContactInfo.Name != rec.ContactInfo.Name {
		t.Error("contact info must survive filtering")
	}
	if filtered.TargetRole != rec.TargetRole {
		t.Error("target role must survive filtering")
	}
	if !filtered.HasSummary() || !filtered.HasSkills() {
		t.Error("selected sections were dropped")
	}
	if filtered.HasExperience() || filtered.HasProjects() || filtered.HasCertifications() {
		t.Error("unselected sections were kept")
	}
	if rec.HasExperience() == false {
		t.Error("filtering must not mutate the source record")
	}
}

func TestValidateSectionKeys(t *testing.T) {
	if err := ValidateSectionKeys([]string{SectionSummary, SectionSkills}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateSectionKeys([]string{"hobbies"}); err == nil {
		t.Fatal("expected an error for an unknown section key")
	}
}

func TestSampleRecordRoundTrip(t *testing.T) {
	out, err := json.Marshal(SampleRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := ParseRecord(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Skills.Kind() != SkillsCategorized {
		t.Errorf("expected categorized skills, got kind %v", rec.Skills.Kind())
	}
	if got := rec.Skills.OrderedCategories(); !reflect.DeepEqual(got, []string{"Technical", "Soft"}) {
		t.Errorf("unexpected category order %v", got)
	}
}
