// Package render converts resume sections into an ordered sequence of
// layout blocks. Every renderer is a pure function: identical input yields
// an identical block sequence, and empty input yields zero blocks.
package render

import "strings"

// BlockKind enumerates the layout primitives the document backends know
// how to draw.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockBulletList
	BlockTable
	BlockRule
	BlockSpacer
)

// Span is a run of text with inline emphasis.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// Block is one layout element. Spans carry Heading/Paragraph content,
// Items carries BulletList content, Rows carries Table content and Gap is
// the Spacer height in points.
type Block struct {
	Kind  BlockKind
	Style StyleName
	Spans []Span
	Items []string
	Rows  [][]string
	Gap   float64
}

// Text flattens the block's spans, ignoring emphasis.
func (b Block) Text() string {
	var sb strings.Builder
	for _, span := range b.Spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

func Heading(style StyleName, text string) Block {
	return Block{Kind: BlockHeading, Style: style, Spans: []Span{{Text: text}}}
}

func Paragraph(style StyleName, spans ...Span) Block {
	return Block{Kind: BlockParagraph, Style: style, Spans: spans}
}

func BulletList(style StyleName, items []string) Block {
	return Block{Kind: BlockBulletList, Style: style, Items: items}
}

func Table(style StyleName, rows [][]string) Block {
	return Block{Kind: BlockTable, Style: style, Rows: rows}
}

func Rule() Block {
	return Block{Kind: BlockRule}
}

func Spacer(gap float64) Block {
	return Block{Kind: BlockSpacer, Gap: gap}
}

func Text(s string) Span { return Span{Text: s} }

func BoldText(s string) Span { return Span{Text: s, Bold: true} }

func ItalicText(s string) Span { return Span{Text: s, Italic: true} }

// joinSpans interleaves the given spans with a plain-text separator.
func joinSpans(sep string, spans []Span) []Span {
	if len(spans) <= 1 {
		return spans
	}
	out := make([]Span, 0, 2*len(spans)-1)
	for i, span := range spans {
		if i > 0 {
			out = append(out, Span{Text: sep})
		}
		out = append(out, span)
	}
	return out
}
