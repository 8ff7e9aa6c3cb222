package diff

import (
	"reflect"
	"testing"

	"resumecrafter/internal/resume"
)

func findCheck(t *testing.T, report *Report, name string) Check {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %s missing from report", name)
	return Check{}
}

func hasCheck(report *Report, name string) bool {
	for _, c := range report.Checks {
		if c.Name == name {
			return true
		}
	}
	return false
}

func TestCompareDetectsAddedSections(t *testing.T) {
	original := []byte(`{"contact_info": {"name": "Jane"}, "skills": ["Go"]}`)
	optimized := []byte(`{"contact_info": {"name": "Jane"}, "skills": ["Go"], "awards": ["Best Dev"]}`)

	report, err := Compare(original, optimized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := findCheck(t, report, CheckSections)
	if check.Status != StatusWarning {
		t.Error("expected a warning for the fabricated section")
	}
	if !reflect.DeepEqual(check.Added, []string{"awards"}) {
		t.Errorf("expected added sections [awards], got %v", check.Added)
	}
}

func TestCompareSectionSubsetIsClean(t *testing.T) {
	original := []byte(`{"contact_info": {"name": "Jane"}, "skills": ["Go"], "certifications": ["CKA"]}`)
	optimized := []byte(`{"contact_info": {"name": "Jane"}, "skills": ["Go"]}`)

	report, err := Compare(original, optimized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.HasWarnings() {
		t.Errorf("dropping a section must not warn: %+v", report.Warnings())
	}
}

func TestCompareSkillsAcrossShapes(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		optimized string
		added     []string
	}{
		{
			name:      "same skills different shapes",
			original:  `{"contact_info": {"name": "J"}, "skills": {"Tech": ["Go", "SQL"]}}`,
			optimized: `{"contact_info": {"name": "J"}, "skills": ["SQL", "Go"]}`,
			added:     nil,
		},
		{
			name:      "fabricated skill in categorized shape",
			original:  `{"contact_info": {"name": "J"}, "skills": ["Go"]}`,
			optimized: `{"contact_info": {"name": "J"}, "skills": {"Tech": ["Go", "Kubernetes"]}}`,
			added:     []string{"Kubernetes"},
		},
		{
			name:      "skill subset is clean",
			original:  `{"contact_info": {"name": "J"}, "skills": ["Go", "SQL", "Python"]}`,
			optimized: `{"contact_info": {"name": "J"}, "skills": ["Go"]}`,
			added:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Compare([]byte(tt.original), []byte(tt.optimized))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			check := findCheck(t, report, CheckSkills)
			if !reflect.DeepEqual(check.Added, tt.added) {
				t.Errorf("expected added skills %v, got %v", tt.added, check.Added)
			}
			wantStatus := StatusOK
			if len(tt.added) > 0 {
				wantStatus = StatusWarning
			}
			if check.Status != wantStatus {
				t.Errorf("expected status %s, got %s", wantStatus, check.Status)
			}
		})
	}
}

func TestCompareSkillsCheckSkippedWhenAbsent(t *testing.T) {
	original := []byte(`{"contact_info": {"name": "J"}}`)
	optimized := []byte(`{"contact_info": {"name": "J"}, "skills": ["Go"]}`)

	report, err := Compare(original, optimized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The skills check needs both sides; the fabricated section still
	// trips the section check.
	if hasCheck(report, CheckSkills) {
		t.Error("skills check must be skipped when one side has no skills key")
	}
	if findCheck(t, report, CheckSections).Status != StatusWarning {
		t.Error("expected section warning")
	}
}

func TestCompareCertifications(t *testing.T) {
	original := []byte(`{"contact_info": {"name": "J"}, "certifications": ["CKA"]}`)
	optimized := []byte(`{"contact_info": {"name": "J"}, "certifications": ["CKA", "AWS SA Pro"]}`)

	report, err := Compare(original, optimized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := findCheck(t, report, CheckCertifications)
	if !reflect.DeepEqual(check.Added, []string{"AWS SA Pro"}) {
		t.Errorf("expected added certifications [AWS SA Pro], got %v", check.Added)
	}
}

func TestCompareProjectsCaseInsensitive(t *testing.T) {
	original := []byte(`{"contact_info": {"name": "J"},
		"projects": [{"name": "Search Service"}]}`)
	optimized := []byte(`{"contact_info": {"name": "J"},
		"projects": [{"name": "SEARCH SERVICE"}, {"name": "New Thing"}]}`)

	report, err := Compare(original, optimized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := findCheck(t, report, CheckProjects)
	if !reflect.DeepEqual(check.Added, []string{"new thing"}) {
		t.Errorf("expected added projects [new thing], got %v", check.Added)
	}
}

func TestComparePositionalPairing(t *testing.T) {
	original := &resume.Record{
		ContactInfo: resume.ContactInfo{Name: "J"},
		WorkExperience: []resume.ExperienceEntry{
			{JobTitle: "Engineer", Company: "Acme", Dates: "2019 - 2021"},
			{JobTitle: "Senior Engineer", Company: "Acme", Dates: "2021 - Present"},
		},
	}
	optimized := &resume.Record{
		ContactInfo: resume.ContactInfo{Name: "J"},
		WorkExperience: []resume.ExperienceEntry{
			{JobTitle: "Software Engineer", Company: "Acme", Dates: "2019 - 2021"},
		},
	}

	report := CompareRecords(original, optimized)

	var section *SectionComparison
	for i := range report.Sections {
		if report.Sections[i].Key == resume.SectionExperience {
			section = &report.Sections[i]
		}
	}
	if section == nil {
		t.Fatal("work experience comparison missing")
	}
	if len(section.Rows) != 2 {
		t.Fatalf("expected rows up to the longer side, got %d", len(section.Rows))
	}
	if section.Rows[1].Optimized != "N/A" {
		t.Errorf("expected N/A for the missing optimized entry, got %q", section.Rows[1].Optimized)
	}
	if section.Rows[1].Original == "N/A" {
		t.Error("original side of row 1 should be populated")
	}
}

func TestCompareIdenticalRecords(t *testing.T) {
	doc, err := resume.SampleRecord().MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := Compare(doc, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.HasWarnings() {
		t.Errorf("identical documents must not warn: %+v", report.Warnings())
	}
	if len(report.Sections) == 0 {
		t.Error("expected side-by-side sections for a populated record")
	}
}

func TestCompareRejectsMalformedInput(t *testing.T) {
	if _, err := Compare([]byte(`not json`), []byte(`{}`)); err == nil {
		t.Error("expected error for malformed original")
	}
	if _, err := Compare([]byte(`{"contact_info":{"name":"J"}}`), []byte(`{"skills": 3}`)); err == nil {
		t.Error("expected error for malformed optimized skills")
	}
}
