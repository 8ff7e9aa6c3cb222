package resume

import (
	"encoding/json"
	"reflect"
	"testing"

	"resumecrafter/internal/errors"
)

func TestSkillsUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		kind        SkillsKind
		flattened   []string
	}{
		{
			name:      "categorized mapping",
			input:     `{"Technical": ["Go", "Python"], "Soft": ["Communication"]}`,
			kind:      SkillsCategorized,
			flattened: []string{"Go", "Python", "Communication"},
		},
		{
			name:      "flat list",
			input:     `["Go", "Python", "SQL"]`,
			kind:      SkillsFlat,
			flattened: []string{"Go", "Python", "SQL"},
		},
		{
			name:  "null is absent",
			input: `null`,
			kind:  SkillsNone,
		},
		{
			name:      "empty mapping",
			input:     `{}`,
			kind:      SkillsCategorized,
			flattened: nil,
		},
		{
			name:      "empty list",
			input:     `[]`,
			kind:      SkillsFlat,
			flattened: nil,
		},
		{
			name:        "string is rejected",
			input:       `"Go, Python"`,
			expectError: true,
		},
		{
			name:        "number is rejected",
			input:       `7`,
			expectError: true,
		},
		{
			name:        "mapping with non-list values is rejected",
			input:       `{"Technical": "Go"}`,
			expectError: true,
		},
		{
			name:        "list with non-string items is rejected",
			input:       `["Go", 42]`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Skills
			err := json.Unmarshal([]byte(tt.input), &s)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				appErr, ok := err.(*errors.AppError)
				if !ok {
					t.Fatalf("expected *errors.AppError, got %T", err)
				}
				if appErr.Code != errors.ErrCodeSkillsTypeMismatch {
					t.Errorf("expected code %s, got %s", errors.ErrCodeSkillsTypeMismatch, appErr.Code)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, s.Kind())
			}
			if got := s.Flatten(); len(got) > 0 || len(tt.flattened) > 0 {
				if !reflect.DeepEqual(got, tt.flattened) {
					t.Errorf("expected flattened %v, got %v", tt.flattened, got)
				}
			}
		})
	}
}

func TestSkillsCategoryOrderPreserved(t *testing.T) {
	input := `{"Zebra": ["a"], "Alpha": ["b"], "Middle": ["c"]}`

	var s Skills
	if err := json.Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Zebra", "Alpha", "Middle"}
	if got := s.OrderedCategories(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected category order %v, got %v", want, got)
	}

	// Round trip keeps the order too.
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var again Skills
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := again.OrderedCategories(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected category order %v after round trip, got %v", want, got)
	}
}

func TestSkillsIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input Skills
		empty bool
	}{
		{"zero value", Skills{}, true},
		{"empty categories", Skills{Categories: map[string][]string{}}, true},
		{"categories with empty lists", Skills{Categories: map[string][]string{"Technical": {}}}, true},
		{"populated categories", Skills{Categories: map[string][]string{"Technical": {"Go"}}}, false},
		{"empty flat list", Skills{Flat: []string{}}, true},
		{"populated flat list", Skills{Flat: []string{"Go"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.IsEmpty(); got != tt.empty {
				t.Errorf("expected IsEmpty=%v, got %v", tt.empty, got)
			}
		})
	}
}
