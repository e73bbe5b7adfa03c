package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// SheetName is the title of the sample workbook's only sheet.
const SheetName = "Customers"

var sampleRow = []any{
	"John", "Doe", "john@example.com", "+1234567890", "123 Main St",
	"New York", "NY", "USA", "10001", "ABC Corp", "Sample customer",
}

// Template builds the downloadable import template.
type Template struct{}

func NewTemplate() *Template {
	return &Template{}
}

// SampleTemplate returns an xlsx with a styled header row and one example row.
func (t *Template) SampleTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := make([]any, len(domain.ImportHeaders))
	for i, h := range domain.ImportHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}
	row := append([]any(nil), sampleRow...)
	if err := f.SetSheetRow(SheetName, "A2", &row); err != nil {
		return nil, fmt.Errorf("write sample row: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCell, style); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
