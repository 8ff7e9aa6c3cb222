package resume

import (
	"bytes"
	"encoding/json"
	"sort"

	"resumecrafter/internal/errors"
)

// SkillsKind identifies which shape a Skills value carries.
type SkillsKind int

const (
	SkillsNone SkillsKind = iota
	SkillsCategorized
	SkillsFlat
)

// Skills is the two-shape skills section: either a mapping from category
// name to a list of skills, or a flat ordered list. Exactly one shape is
// active at a time. The category order of the source document is kept so
// rendering stays deterministic.
type Skills struct {
	Categories    map[string][]string
	CategoryOrder []string
	Flat          []string
}

func (s Skills) Kind() SkillsKind {
	switch {
	case s.Categories != nil:
		return SkillsCategorized
	case s.Flat != nil:
		return SkillsFlat
	default:
		return SkillsNone
	}
}

// IsEmpty reports whether the section would render nothing.
func (s Skills) IsEmpty() bool {
	for _, skills := range s.Categories {
		if len(skills) > 0 {
			return false
		}
	}
	return len(s.Flat) == 0
}

// OrderedCategories returns category names in source-document order. Names
// missing from the recorded order (values built in code) are appended sorted.
func (s Skills) OrderedCategories() []string {
	seen := make(map[string]bool, len(s.CategoryOrder))
	names := make([]string, 0, len(s.Categories))
	for _, name := range s.CategoryOrder {
		if _, ok := s.Categories[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.Categories {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Flatten collapses both shapes into a single ordered list, categorized
// values concatenated in category order.
func (s Skills) Flatten() []string {
	if s.Kind() == SkillsCategorized {
		var all []string
		for _, name := range s.OrderedCategories() {
			all = append(all, s.Categories[name]...)
		}
		return all
	}
	return append([]string(nil), s.Flat...)
}

// UnmarshalJSON branches on the leading token: an object is the categorized
// shape, an array the flat shape, null an absent section. Anything else is a
// malformed document.
func (s *Skills) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = Skills{}
		return nil
	}

	switch trimmed[0] {
	case '{':
		var cats map[string][]string
		if err := json.Unmarshal(trimmed, &cats); err != nil {
			return errors.NewValidationError(errors.ErrCodeSkillsTypeMismatch,
				"skills categories must map names to lists of skills", err)
		}
		*s = Skills{Categories: cats, CategoryOrder: topLevelKeys(trimmed)}
		return nil
	case '[':
		var flat []string
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return errors.NewValidationError(errors.ErrCodeSkillsTypeMismatch,
				"skills list must contain only strings", err)
		}
		if flat == nil {
			flat = []string{}
		}
		*s = Skills{Flat: flat}
		return nil
	}

	return errors.NewValidationError(errors.ErrCodeSkillsTypeMismatch,
		"skills must be a category mapping or a list", nil)
}

// MarshalJSON round-trips the active shape, categories in recorded order.
func (s Skills) MarshalJSON() ([]byte, error) {
	switch s.Kind() {
	case SkillsCategorized:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, name := range s.OrderedCategories() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(s.Categories[name])
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case SkillsFlat:
		return json.Marshal(s.Flat)
	default:
		return []byte("null"), nil
	}
}

// topLevelKeys reads the keys of a JSON object in document order.
func topLevelKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}
