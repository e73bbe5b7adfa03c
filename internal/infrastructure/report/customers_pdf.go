// Package report renders customer reports as PDF documents using fpdf.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

const (
	reportTitle = "Customer Data Report"
	placeholder = "N/A"

	pageMargin   = 10.0 // mm
	headerHeight = 10.0
	rowHeight    = 7.0
	cellPadding  = 1.5
	gridWidth    = 0.35 // ~1pt
)

var (
	reportColumns = []string{"Name", "Email", "Phone", "Company", "City"}
	// Relative column widths; Email gets the widest column.
	columnWeights = []float64{1.5, 2, 1.5, 1.5, 1.5}

	brandBlue  = rgb{78, 115, 223} // #4e73df
	whiteSmoke = rgb{245, 245, 245}
	lightGrey  = rgb{211, 211, 211}
	white      = rgb{255, 255, 255}
)

type rgb struct{ r, g, b int }

// PDFRenderer draws the customer table on A4 pages.
type PDFRenderer struct {
	compress bool
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{compress: true}
}

// RenderCustomers writes a titled table with one row per customer, in the
// order given. An empty slice yields a header-only table.
func (r *PDFRenderer) RenderCustomers(w io.Writer, customers []*domain.Customer, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(reportTitle, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()
	widths := columnWidths(pageWidth - 2*pageMargin)

	pdf.SetFont("Helvetica", "B", 24)
	setText(pdf, brandBlue)
	pdf.CellFormat(0, 12, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, rgb{})
	pdf.CellFormat(0, 6, "Generated on: "+generatedAt.Format("January 02, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(7)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(gridWidth)
	drawHeader(pdf, widths)

	for i, c := range customers {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
			drawHeader(pdf, widths)
		}
		fill := white
		if i%2 == 1 {
			fill = lightGrey
		}
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		for j, value := range tableRow(c) {
			text := fitText(pdf, tr(value), widths[j]-2*cellPadding)
			pdf.CellFormat(widths[j], rowHeight, text, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// drawHeader prints the column titles and leaves the body style selected.
func drawHeader(pdf *fpdf.Fpdf, widths []float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(brandBlue.r, brandBlue.g, brandBlue.b)
	setText(pdf, whiteSmoke)
	for i, title := range reportColumns {
		pdf.CellFormat(widths[i], headerHeight, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, rgb{})
}

func setText(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}

func columnWidths(total float64) []float64 {
	var sum float64
	for _, w := range columnWeights {
		sum += w
	}
	out := make([]float64, len(columnWeights))
	for i, w := range columnWeights {
		out[i] = total * w / sum
	}
	return out
}

// tableRow returns the cell values for one customer.
func tableRow(c *domain.Customer) []string {
	return []string{
		c.FullName(),
		c.Email,
		orPlaceholder(c.Phone),
		orPlaceholder(c.Company),
		orPlaceholder(c.City),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// fitText truncates s with "..." until it fits in width. s must already be
// translated to the single-byte font encoding.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	for len(s) > 0 && pdf.GetStringWidth(s+ellipsis) > width {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}
