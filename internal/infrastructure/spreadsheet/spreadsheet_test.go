package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReader_ReadRows(t *testing.T) {
	t.Run("reads header and data rows", func(t *testing.T) {
		buf := workbook(t,
			[]any{"First Name", "Last Name", "Email"},
			[]any{"Ann", "Lee", "ann@x.com", "555"},
		)

		rows, err := NewReader().ReadRows(buf)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"Ann", "Lee", "ann@x.com", "555"}, rows[1])
	})

	t.Run("numbers are read as displayed", func(t *testing.T) {
		buf := workbook(t,
			[]any{"First Name"},
			[]any{"Ann", "Lee", "ann@x.com", "", "", "", "", "", 10001},
		)

		rows, err := NewReader().ReadRows(buf)
		require.NoError(t, err)
		require.Len(t, rows[1], 9)
		assert.Equal(t, "10001", rows[1][8])
		assert.Equal(t, "", rows[1][3])
	})

	t.Run("reads the active sheet", func(t *testing.T) {
		f := excelize.NewFile()
		idx, err := f.NewSheet("Second")
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Second", "A2", "from-second"))
		require.NoError(t, f.SetCellValue(f.GetSheetName(0), "A2", "from-first"))
		f.SetActiveSheet(idx)
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)
		require.NoError(t, f.Close())

		rows, err := NewReader().ReadRows(buf)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "from-second", rows[1][0])
	})

	t.Run("header only", func(t *testing.T) {
		rows, err := NewReader().ReadRows(workbook(t, []any{"First Name", "Last Name"}))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("corrupt file", func(t *testing.T) {
		_, err := NewReader().ReadRows(strings.NewReader("this is not a workbook"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)
	})
}

func TestTemplate_SampleTemplate(t *testing.T) {
	body, err := NewTemplate().SampleTemplate()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.ImportHeaders, rows[0])
	assert.Equal(t, []string{
		"John", "Doe", "john@example.com", "+1234567890", "123 Main St",
		"New York", "NY", "USA", "10001", "ABC Corp", "Sample customer",
	}, rows[1])

	for _, cell := range []string{"A1", "K1"} {
		styleID, err := f.GetCellStyle(SheetName, cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Font, cell)
		assert.True(t, style.Font.Bold, cell)
		assert.Equal(t, 1, style.Fill.Pattern, cell)
	}

	styleID, err := f.GetCellStyle(SheetName, "A2")
	require.NoError(t, err)
	assert.Zero(t, styleID, "data row should be unstyled")
}

func TestTemplate_FeedsReader(t *testing.T) {
	body, err := NewTemplate().SampleTemplate()
	require.NoError(t, err)

	rows, err := NewReader().ReadRows(bytes.NewReader(body))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "john@example.com", rows[1][2])
}
