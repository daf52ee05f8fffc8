package parser

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/importer/domain"
	"github.com/xuri/excelize/v2"
)

// Record is one raw data row keyed by column header. RowNumber is the
// 1-based position in the source sheet (the header is row 1, so data rows
// start at 2).
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Parse reads the first sheet of the file into ordered records, dropping
// fully-blank rows and non-data rows where every key column is empty.
// Cell values are raw: date cells in .xlsx surface as their serial number.
func Parse(path string, cols config.ImportColumns) ([]Record, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".xls":
		rows, err = readXLS(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, domain.ErrEmptyWorkbook
	}

	header := rows[0]
	labels := columnLabels(cols)
	keyLabels := keyColumnLabels(cols)

	records := make([]Record, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		values := make(map[string]string, len(labels))
		for _, label := range labels {
			values[label] = cellAt(header, raw, label)
		}

		if isRowEmpty(values, labels) || isNonDataRow(values, keyLabels) {
			continue
		}

		records = append(records, Record{
			RowNumber: i + 2,
			Values:    values,
		})
	}

	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyWorkbook
	}
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readXLS(path string) ([][]string, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, err
	}
	if len(workbook.GetSheets()) == 0 {
		return nil, domain.ErrEmptyWorkbook
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func cellAt(header, raw []string, label string) string {
	for i, h := range header {
		if strings.TrimSpace(h) != label {
			continue
		}
		if i < len(raw) {
			return raw[i]
		}
		return ""
	}
	return ""
}

func isRowEmpty(values map[string]string, labels []string) bool {
	for _, label := range labels {
		if strings.TrimSpace(values[label]) != "" {
			return false
		}
	}
	return true
}

// Non-data rows (section headers common in these exports) have every key
// column empty even when decorative columns carry text.
func isNonDataRow(values map[string]string, keyLabels []string) bool {
	for _, label := range keyLabels {
		if strings.TrimSpace(values[label]) != "" {
			return false
		}
	}
	return true
}

func columnLabels(cols config.ImportColumns) []string {
	return []string{
		cols.TxnCode,
		cols.TxnDate,
		cols.Amount,
		cols.Status,
		cols.TransactionType,
		cols.FullName,
		cols.Identification,
		cols.Address,
		cols.Phone,
		cols.Email,
		cols.PlatformName,
		cols.InvoiceNumber,
		cols.BillingPeriod,
		cols.BilledAmount,
		cols.PaidAmount,
	}
}

func keyColumnLabels(cols config.ImportColumns) []string {
	return []string{
		cols.TxnCode,
		cols.TxnDate,
		cols.Status,
		cols.FullName,
		cols.Identification,
		cols.Email,
		cols.PlatformName,
		cols.InvoiceNumber,
		cols.BillingPeriod,
	}
}
