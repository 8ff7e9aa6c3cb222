package render

// StyleName is the role a block plays in the document. Backends resolve it
// through a StyleSheet.
type StyleName string

const (
	StyleHeader        StyleName = "header"
	StyleContact       StyleName = "contact"
	StyleRole          StyleName = "role"
	StyleSection       StyleName = "section"
	StyleJobTitle      StyleName = "job_title"
	StyleCompany       StyleName = "company"
	StyleBody          StyleName = "body"
	StyleBullet        StyleName = "bullet"
	StyleSkillCategory StyleName = "skill_category"
	StyleSkillTable    StyleName = "skill_table"
	StyleTechnologies  StyleName = "technologies"
	StyleCoverBody     StyleName = "cover_body"
	StyleFooter        StyleName = "footer"
)

// Alignment controls horizontal paragraph placement.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Style describes how a block role is drawn. Sizes and spacing are in
// points. An empty Color means default ink.
type Style struct {
	FontSize   float64
	Leading    float64
	Bold       bool
	Italic     bool
	Color      string
	Alignment  Alignment
	SpaceAfter float64
	Indent     float64
}

// StyleSheet maps block roles to concrete styles.
type StyleSheet map[StyleName]Style

// Document palette.
const (
	colorAccent  = "#2E5D9E"
	colorContact = "#444444"
	colorMuted   = "#555555"
	colorFooter  = "#888888"
)

// FullStyles is the styled variant: blue headings, italic gray company
// lines, gray footer.
func FullStyles() StyleSheet {
	return StyleSheet{
		StyleHeader:        {FontSize: 16, Leading: 20, Bold: true, Color: colorAccent, Alignment: AlignCenter, SpaceAfter: 12},
		StyleContact:       {FontSize: 10, Leading: 12, Color: colorContact, Alignment: AlignCenter, SpaceAfter: 16},
		StyleRole:          {FontSize: 12, Leading: 14, Bold: true, Color: colorAccent, Alignment: AlignCenter, SpaceAfter: 16},
		StyleSection:       {FontSize: 12, Leading: 14, Bold: true, Color: colorAccent, SpaceAfter: 6},
		StyleJobTitle:      {FontSize: 11, Leading: 13, Bold: true, SpaceAfter: 2},
		StyleCompany:       {FontSize: 10, Leading: 12, Italic: true, Color: colorMuted, SpaceAfter: 4},
		StyleBody:          {FontSize: 10, Leading: 12, SpaceAfter: 4},
		StyleBullet:        {FontSize: 10, Leading: 12, SpaceAfter: 4, Indent: 10},
		StyleSkillCategory: {FontSize: 10, Leading: 12, Bold: true, Color: colorAccent, SpaceAfter: 4},
		StyleSkillTable:    {FontSize: 9, Leading: 11, SpaceAfter: 2},
		StyleTechnologies:  {FontSize: 10, Leading: 12, Italic: true, Color: colorMuted, SpaceAfter: 8},
		StyleCoverBody:     {FontSize: 11, Leading: 14, SpaceAfter: 12},
		StyleFooter:        {FontSize: 8, Leading: 10, Color: colorFooter},
	}
}

// PlainStyles keeps the metrics of FullStyles but drops color and the
// company italics, for consumers that want an unstyled document.
func PlainStyles() StyleSheet {
	styles := FullStyles()
	for name, style := range styles {
		style.Color = ""
		if name == StyleCompany || name == StyleTechnologies {
			style.Italic = false
		}
		styles[name] = style
	}
	return styles
}

// Resolve returns the style for a role, falling back to the body style.
func (s StyleSheet) Resolve(name StyleName) Style {
	if style, ok := s[name]; ok {
		return style
	}
	return s[StyleBody]
}
