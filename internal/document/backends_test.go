package document

import (
	"bytes"
	"testing"
	"time"

	"resumecrafter/internal/resume"
)

func TestRenderPDF(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
	}{
		{"full styles", VariantFull},
		{"plain styles", VariantPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderPDF(BuildResume(resume.SampleRecord()), Styles(tt.variant))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Error("output does not start with a PDF header")
			}
			if len(out) < 1000 {
				t.Errorf("suspiciously small PDF: %d bytes", len(out))
			}
		})
	}
}

func TestRenderPDFCoverLetter(t *testing.T) {
	blocks := BuildCoverLetter(resume.SampleRecord(),
		"First paragraph.\n\nSecond paragraph.", "Acme", time.Now())

	out, err := RenderPDF(blocks, Styles(VariantFull))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestRenderDOCX(t *testing.T) {
	blocks := BuildCoverLetter(resume.SampleRecord(),
		"First paragraph.\n\nSincerely,\nJohn", "Acme", time.Now())

	out, err := RenderDOCX(blocks, Styles(VariantFull))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// DOCX is a zip container.
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Error("output is not a zip archive")
	}
}
