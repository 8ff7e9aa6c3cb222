package document

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"resumecrafter/internal/errors"
	"resumecrafter/internal/render"
)

// RenderDOCX writes the block sequence as flat styled paragraphs, the
// editable-document output used for cover letters. Block order matches the
// PDF variant exactly; spacers become empty paragraphs.
func RenderDOCX(blocks []render.Block, styles render.StyleSheet) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, block := range blocks {
		switch block.Kind {
		case render.BlockSpacer, render.BlockRule:
			doc.AddParagraph()

		case render.BlockTable:
			style := styles.Resolve(block.Style)
			for _, row := range block.Rows {
				var cells []string
				for _, cell := range row {
					if cell != "" {
						cells = append(cells, cell)
					}
				}
				para := doc.AddParagraph()
				styleRun(para.AddText(strings.Join(cells, "    ")), style, render.Span{})
			}

		case render.BlockBulletList:
			style := styles.Resolve(block.Style)
			for _, item := range block.Items {
				para := doc.AddParagraph()
				styleRun(para.AddText("• "+item), style, render.Span{})
			}

		default:
			style := styles.Resolve(block.Style)
			para := doc.AddParagraph()
			if style.Alignment == render.AlignCenter {
				para.Justification("center")
			}
			for _, span := range block.Spans {
				styleRun(para.AddText(span.Text), style, span)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed,
			"could not write DOCX document", err)
	}
	return buf.Bytes(), nil
}

func styleRun(run *docx.Run, style render.Style, span render.Span) {
	// Run sizes are half-points.
	run.Size(strconv.Itoa(int(style.FontSize * 2)))
	if style.Bold || span.Bold {
		run.Bold()
	}
	if style.Italic || span.Italic {
		run.Italic()
	}
	if style.Color != "" {
		run.Color(strings.TrimPrefix(style.Color, "#"))
	}
}
