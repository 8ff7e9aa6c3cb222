package common

import (
	"fmt"
	"slices"
)

// Physical formats the document backends can produce.
var documentFormats = []string{"pdf", "docx"}

// Style variants the stylesheet resolver understands.
var styleVariants = []string{"full", "plain"}

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}

// ValidateDocumentFormat checks a physical render format.
func ValidateDocumentFormat(format string) error {
	if slices.Contains(documentFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid document format '%s'. Supported formats: %v",
		format, documentFormats)
}

// ValidateStyleVariant checks a document style variant.
func ValidateStyleVariant(variant string) error {
	if slices.Contains(styleVariants, variant) {
		return nil
	}
	return fmt.Errorf("invalid style variant '%s'. Supported variants: %v",
		variant, styleVariants)
}
