package campaign

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"
	"unnichat-backend/internal/store"

	"github.com/xuri/excelize/v2"
)

const logSheet = "Disparos"

// Column order of the export. Imports locate columns by header name, so a
// re-uploaded export is accepted as is.
var logHeaders = []string{
	"Date", "Chip", "Number", "Client", "Action", "Leads", "Template", "Cost", "Observations",
}

func writeLogSheet(logs []models.LogView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", logSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	header := make([]any, len(logHeaders))
	for i, h := range logHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(logSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(logHeaders))
	if err := f.SetCellStyle(logSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("xlsx header style: %w", err)
	}

	for i, l := range logs {
		obs := ""
		if l.Observations != nil {
			obs = *l.Observations
		}
		row := []any{
			l.Date, l.ChipName, l.ChipNumber, l.TenantName, l.Action,
			l.LeadsCount, string(l.TemplateType), l.Cost, obs,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(logSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(logSheet, "A", "D", 16)
	_ = f.SetColWidth(logSheet, "E", "E", 32)
	_ = f.SetColWidth(logSheet, "I", "I", 40)
	_ = f.SetPanes(logSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf, nil
}

// importColumns maps the accepted header spellings to a field.
var importColumns = map[string]string{
	"date":          "date",
	"data":          "date",
	"number":        "number",
	"numero":        "number",
	"número":        "number",
	"chip number":   "number",
	"chip_id":       "chip_id",
	"action":        "action",
	"acao":          "action",
	"ação":          "action",
	"leads":         "leads",
	"leads_count":   "leads",
	"template":      "template",
	"template_type": "template",
	"cost":          "cost",
	"custo":         "cost",
	"observations":  "observations",
	"observacoes":   "observations",
	"observações":   "observations",
}

var requiredColumns = []string{"date", "action", "leads", "template", "cost"}

// readLogSheet parses the first sheet of an uploaded workbook. Rows whose
// cells cannot be read are returned as failures; the rest go to the store,
// which applies the same checks as a single create.
func readLogSheet(r io.Reader) ([]store.ImportRow, []store.ImportFailure, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, apperr.Validation("file is not a readable .xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperr.Validation("workbook has no sheets")
	}
	// raw values: displayed text depends on the cell's number format
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, apperr.Validation("sheet %s cannot be read", sheets[0])
	}
	if len(rows) == 0 {
		return nil, nil, apperr.Validation("workbook is empty")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		if field, ok := importColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, seen := cols[field]; !seen {
				cols[field] = i
			}
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	_, hasNumber := cols["number"]
	_, hasChipID := cols["chip_id"]
	if !hasNumber && !hasChipID {
		missing = append(missing, "number")
	}
	if len(missing) > 0 {
		return nil, nil, apperr.Validation("missing columns: %s", strings.Join(missing, ", "))
	}

	out := make([]store.ImportRow, 0, len(rows)-1)
	failed := make([]store.ImportFailure, 0)
	for i, cells := range rows[1:] {
		line := i + 2
		get := func(field string) string {
			idx, ok := cols[field]
			if !ok || idx >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[idx])
		}

		if isBlankRow(cells) {
			continue
		}

		row, err := parseLogRow(line, get)
		if err != nil {
			failed = append(failed, store.ImportFailure{Line: line, Error: err.Error()})
			continue
		}
		out = append(out, row)
	}
	return out, failed, nil
}

func parseLogRow(line int, get func(string) string) (store.ImportRow, error) {
	row := store.ImportRow{Line: line, Chip: get("number")}

	if raw := get("chip_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return row, fmt.Errorf("chip_id %q is not a number", raw)
		}
		row.Input.ChipID = uint(id)
	}
	if row.Chip == "" && row.Input.ChipID == 0 {
		return row, fmt.Errorf("chip number is required")
	}

	date, err := normalizeDate(get("date"))
	if err != nil {
		return row, err
	}

	in := store.CreateLogInput{
		ChipID:       row.Input.ChipID,
		Date:         date,
		Action:       get("action"),
		TemplateType: models.TemplateType(normalizeTemplate(get("template"))),
	}

	if raw := get("leads"); raw != "" {
		leads, err := strconv.Atoi(raw)
		if err != nil {
			return row, fmt.Errorf("leads %q is not a whole number", raw)
		}
		in.LeadsCount = &leads
	}
	if raw := get("cost"); raw != "" {
		cost, err := parseDecimal(raw)
		if err != nil {
			return row, fmt.Errorf("cost %q is not a number", raw)
		}
		in.Cost = &cost
	}
	if obs := get("observations"); obs != "" {
		in.Observations = &obs
	}

	row.Input = in
	return row, nil
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "01-02-06"}

// normalizeDate accepts ISO dates, day-first dates, the short format
// spreadsheet apps show for date-typed cells and raw date serials.
func normalizeDate(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("date is required")
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", fmt.Errorf("date %q is not a valid date", raw)
		}
		return t.Format("2006-01-02"), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("date %q is not a valid date", raw)
}

func normalizeTemplate(raw string) string {
	switch strings.ToLower(raw) {
	case "marketing":
		return string(models.TemplateMarketing)
	case "utility", "utilidade":
		return string(models.TemplateUtility)
	}
	return raw
}

// parseDecimal reads "1234.5", "1,234.50" and "1.234,50". The separator that
// comes last is the decimal one, unless it repeats, as in "1,234,567".
func parseDecimal(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, " ", "")

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	decimal, thousands := ".", ","
	if comma > dot {
		decimal, thousands = ",", "."
	}
	if strings.Count(s, decimal) > 1 {
		decimal, thousands = "", decimal
	}

	s = strings.ReplaceAll(s, thousands, "")
	if decimal != "" {
		s = strings.Replace(s, decimal, ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
