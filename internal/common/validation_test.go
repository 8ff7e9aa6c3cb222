package common

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedError    string
	}{
		{
			name:             "valid format - json",
			format:           "json",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      false,
		},
		{
			name:             "valid format - markdown",
			format:           "markdown",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      false,
		},
		{
			name:             "invalid format - yaml",
			format:           "yaml",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'yaml'. Supported formats: [json text markdown]",
		},
		{
			name:             "case sensitive - JSON uppercase",
			format:           "JSON",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'JSON'. Supported formats: [json text markdown]",
		},
		{
			name:             "empty format string",
			format:           "",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format ''. Supported formats: [json text markdown]",
		},
		{
			name:             "empty supported formats - should allow all",
			format:           "xml",
			supportedFormats: []string{},
			expectError:      false,
		},
		{
			name:             "single supported format - invalid",
			format:           "text",
			supportedFormats: []string{"json"},
			expectError:      true,
			expectedError:    "unsupported output format 'text'. Supported formats: [json]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}
				if tt.expectedError != "" && err.Error() != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestValidateDocumentFormat(t *testing.T) {
	tests := []struct {
		format      string
		expectError bool
	}{
		{"pdf", false},
		{"docx", false},
		{"html", true},
		{"PDF", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			err := ValidateDocumentFormat(tt.format)
			if tt.expectError && err == nil {
				t.Errorf("Expected error for format %q but got none", tt.format)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error for format %q, got: %v", tt.format, err)
			}
		})
	}
}

func TestValidateStyleVariant(t *testing.T) {
	tests := []struct {
		variant     string
		expectError bool
	}{
		{"full", false},
		{"plain", false},
		{"fancy", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("variant "+tt.variant, func(t *testing.T) {
			err := ValidateStyleVariant(tt.variant)
			if tt.expectError && err == nil {
				t.Errorf("Expected error for variant %q but got none", tt.variant)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error for variant %q, got: %v", tt.variant, err)
			}
		})
	}
}

// Benchmark tests to ensure validation is fast
func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := []string{"json", "text", "markdown"}

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("json", supportedFormats)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}
