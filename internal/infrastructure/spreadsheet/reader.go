// Package spreadsheet reads customer import workbooks and builds the sample
// template, both backed by excelize.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// Reader extracts rows from the active sheet of an xlsx workbook.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadRows returns the active sheet's rows as displayed strings. Trailing
// empty cells are omitted, so rows may be shorter than the header.
// Any failure to open or parse the workbook wraps domain.ErrInvalidSpreadsheet.
func (r *Reader) ReadRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no active sheet", domain.ErrInvalidSpreadsheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	return rows, nil
}
