package document

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"

	"resumecrafter/internal/errors"
	"resumecrafter/internal/render"
)

// pageMargin is the fixed margin on all four sides, in points.
const pageMargin = 40.0

const pdfFontFamily = "Helvetica"

// RenderPDF draws the block sequence onto letter-size pages and returns the
// finished document bytes.
func RenderPDF(blocks []render.Block, styles render.StyleSheet) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, block := range blocks {
		drawBlock(pdf, tr, block, styles)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed,
			"could not write PDF document", err)
	}
	return buf.Bytes(), nil
}

func drawBlock(pdf *fpdf.Fpdf, tr func(string) string, block render.Block, styles render.StyleSheet) {
	switch block.Kind {
	case render.BlockRule:
		y := pdf.GetY()
		pdf.SetDrawColor(68, 68, 68)
		pdf.SetLineWidth(0.5)
		pdf.Line(pageMargin, y, pageMargin+contentWidth(pdf), y)
		pdf.SetY(y + 2)

	case render.BlockSpacer:
		pdf.SetY(pdf.GetY() + block.Gap)

	case render.BlockTable:
		drawTable(pdf, tr, block, styles.Resolve(block.Style))

	case render.BlockBulletList:
		drawBulletList(pdf, tr, block, styles.Resolve(block.Style))

	default:
		drawParagraph(pdf, tr, block, styles.Resolve(block.Style))
	}
}

func drawParagraph(pdf *fpdf.Fpdf, tr func(string) string, block render.Block, style render.Style) {
	applyStyle(pdf, style, render.Span{})

	if style.Alignment == render.AlignCenter {
		pdf.MultiCell(contentWidth(pdf), style.Leading, tr(block.Text()), "", "C", false)
	} else {
		if style.Indent > 0 {
			pdf.SetLeftMargin(pageMargin + style.Indent)
			pdf.SetX(pageMargin + style.Indent)
		}
		for _, span := range block.Spans {
			applyStyle(pdf, style, span)
			pdf.Write(style.Leading, tr(span.Text))
		}
		pdf.Ln(style.Leading)
		if style.Indent > 0 {
			pdf.SetLeftMargin(pageMargin)
		}
	}

	if style.SpaceAfter > 0 {
		pdf.SetY(pdf.GetY() + style.SpaceAfter)
	}
}

func drawBulletList(pdf *fpdf.Fpdf, tr func(string) string, block render.Block, style render.Style) {
	applyStyle(pdf, style, render.Span{})
	indent := pageMargin + style.Indent
	pdf.SetLeftMargin(indent)
	for _, item := range block.Items {
		pdf.SetX(indent)
		pdf.Write(style.Leading, tr("• "+item))
		pdf.Ln(style.Leading + 2)
	}
	pdf.SetLeftMargin(pageMargin)
	if style.SpaceAfter > 0 {
		pdf.SetY(pdf.GetY() + style.SpaceAfter)
	}
}

func drawTable(pdf *fpdf.Fpdf, tr func(string) string, block render.Block, style render.Style) {
	applyStyle(pdf, style, render.Span{})
	for _, row := range block.Rows {
		if len(row) == 0 {
			continue
		}
		colWidth := contentWidth(pdf) / float64(len(row))
		for _, cell := range row {
			pdf.CellFormat(colWidth, style.Leading, tr(cell), "", 0, "L", false, 0, "")
		}
		pdf.Ln(style.Leading + style.SpaceAfter)
	}
}

func applyStyle(pdf *fpdf.Fpdf, style render.Style, span render.Span) {
	var face string
	if style.Bold || span.Bold {
		face += "B"
	}
	if style.Italic || span.Italic {
		face += "I"
	}
	pdf.SetFont(pdfFontFamily, face, style.FontSize)

	r, g, b := parseHexColor(style.Color)
	pdf.SetTextColor(r, g, b)
}

func contentWidth(pdf *fpdf.Fpdf) float64 {
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return width - left - right
}

// parseHexColor reads "#RRGGBB"; anything else is default ink.
func parseHexColor(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(r), int(g), int(b)
}
