package campaign

import (
	"bytes"
	"testing"
	"time"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sheetBytes(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestExportedSheetReadsBack(t *testing.T) {
	obs := "second wave"
	logs := []models.LogView{
		{ChipName: "A1", ChipNumber: "5511999990001", TenantName: "Acme", Date: "2024-03-02",
			Action: "Promo", LeadsCount: 40, TemplateType: models.TemplateUtility, Cost: 12.25, Observations: &obs},
		{ChipName: "A1", ChipNumber: "5511999990001", TenantName: "Acme", Date: "2024-03-01",
			Action: "Launch", LeadsCount: 100, TemplateType: models.TemplateMarketing, Cost: 30},
	}

	buf, err := writeLogSheet(logs)
	require.NoError(t, err)

	rows, failed, err := readLogSheet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "5511999990001", first.Chip)
	assert.Equal(t, "2024-03-02", first.Input.Date)
	assert.Equal(t, "Promo", first.Input.Action)
	require.NotNil(t, first.Input.LeadsCount)
	assert.Equal(t, 40, *first.Input.LeadsCount)
	require.NotNil(t, first.Input.Cost)
	assert.InDelta(t, 12.25, *first.Input.Cost, 1e-9)
	assert.Equal(t, models.TemplateUtility, first.Input.TemplateType)
	require.NotNil(t, first.Input.Observations)
	assert.Equal(t, "second wave", *first.Input.Observations)

	assert.Nil(t, rows[1].Input.Observations)
}

func TestReadLogSheetRowFailures(t *testing.T) {
	buf := sheetBytes(t, [][]any{
		{"Data", "Número", "Ação", "Leads", "Template", "Custo"},
		{"01/03/2024", "100", "Launch", "10", "marketing", "1.234,50"},
		{"tomorrow", "100", "Launch", "10", "Marketing", "1"},
		{"2024-03-01", "100", "Launch", "ten", "Marketing", "1"},
		{"", "", "", "", "", ""},
		{"2024-03-01", "", "Launch", "10", "Marketing", "1"},
		{"2024-03-01", "100", "Launch", "10", "Marketing", "abc"},
	})

	rows, failed, err := readLogSheet(buf)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-01", rows[0].Input.Date)
	assert.Equal(t, models.TemplateMarketing, rows[0].Input.TemplateType)
	assert.InDelta(t, 1234.5, *rows[0].Input.Cost, 1e-9)

	lines := make([]int, 0, len(failed))
	for _, f := range failed {
		lines = append(lines, f.Line)
	}
	assert.Equal(t, []int{3, 4, 6, 7}, lines)
}

func TestReadLogSheetMissingColumns(t *testing.T) {
	buf := sheetBytes(t, [][]any{{"Date", "Action"}, {"2024-03-01", "x"}})

	_, _, err := readLogSheet(buf)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "leads")
	assert.Contains(t, err.Error(), "number")
}

func TestReadLogSheetRejectsGarbage(t *testing.T) {
	_, _, err := readLogSheet(bytes.NewReader([]byte("not a zip")))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestParseDecimal(t *testing.T) {
	cases := map[string]float64{
		"12":        12,
		"12.5":      12.5,
		"12,5":      12.5,
		"1.234,56":  1234.56,
		" 7 ":       7,
		"1,234.50":  1234.5,
		"1,234,567": 1234567,
		"1.234.567": 1234567,
	}
	for raw, want := range cases {
		got, err := parseDecimal(raw)
		require.NoError(t, err, raw)
		assert.InDelta(t, want, got, 1e-9, raw)
	}
}

func TestReadLogSheetUsesRawNumbersAndDates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	header := []any{"Date", "Number", "Action", "Leads", "Template", "Cost"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "100"))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", "Launch"))
	require.NoError(t, f.SetCellValue("Sheet1", "D2", 1500))
	require.NoError(t, f.SetCellValue("Sheet1", "E2", "Marketing"))
	require.NoError(t, f.SetCellValue("Sheet1", "F2", 1234.5))

	// #,##0.00 displays 1234.5 as "1,234.50"
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "D2", "D2", thousands))
	require.NoError(t, f.SetCellStyle("Sheet1", "F2", "F2", thousands))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, failed, err := readLogSheet(buf)
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, rows, 1)

	in := rows[0].Input
	assert.Equal(t, "2024-03-01", in.Date)
	require.NotNil(t, in.LeadsCount)
	assert.Equal(t, 1500, *in.LeadsCount)
	require.NotNil(t, in.Cost)
	assert.InDelta(t, 1234.5, *in.Cost, 1e-9)
}
