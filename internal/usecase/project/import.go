package project

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	expensedomain "expense-approval-backend/internal/domain/expense"
)

// Import ingests a CSV or XLSX catalogue export. Expected columns, in order:
// project_code, project_name, site_location, site_incharge_emp_code. The
// first row is treated as a header. Rows fail individually; one bad row
// never aborts the batch.
func (u *Usecase) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, expensedomain.Invalid("unsupported import format %q, use .csv or .xlsx", filepath.Ext(filename))
	}
	if err != nil {
		return nil, expensedomain.Invalid("could not parse import file: %v", err)
	}
	if len(rows) <= 1 {
		return nil, expensedomain.Invalid("import file has no data rows")
	}

	res := &ImportResult{}
	for i, row := range rows[1:] {
		rowNo := i + 2
		in := rowInput(row)
		if _, err := u.Create(ctx, in); err != nil {
			var ve *expensedomain.ValidationError
			if errors.As(err, &ve) {
				res.Errors = append(res.Errors, RowError{Row: rowNo, Reason: ve.Msg})
				continue
			}
			return nil, fmt.Errorf("import row %d: %w", rowNo, err)
		}
		res.Created++
	}
	return res, nil
}

func rowInput(row []string) UpsertInput {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return UpsertInput{
		ProjectCode:         cell(0),
		ProjectName:         cell(1),
		SiteLocation:        cell(2),
		SiteInchargeEmpCode: cell(3),
	}
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
