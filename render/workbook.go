package render

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/bitmark-inc/covid-monitor/schema"
)

const (
	defaultSheet = "Sheet1"
	dateHeader   = "Date"
	columnWidth  = 18
)

// WriteWorkbook saves one sheet per wide table, named by the table metric.
func WriteWorkbook(path string, tables []*schema.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no table for workbook")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := string(t.Metric.Kind)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); nil != err {
				return err
			}
		} else if _, err := f.NewSheet(sheet); nil != err {
			return err
		}

		if err := writeSheet(f, sheet, t); nil != err {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); nil != err {
		return err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"path":   path,
		"sheets": len(tables),
	}).Debug("write workbook")

	return nil
}

func writeSheet(f *excelize.File, sheet string, t *schema.Table) error {
	header := make([]interface{}, 0, len(t.Columns)+1)
	header = append(header, dateHeader)
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); nil != err {
		return err
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if nil != err {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, columnWidth); nil != err {
		return err
	}

	for i, d := range t.Dates {
		row := make([]interface{}, 0, len(header))
		row = append(row, d.Format(schema.DateLayout))
		for _, c := range t.Columns {
			v := t.Cell(c, i)
			if v.Valid {
				row = append(row, v.Float64)
			} else {
				row = append(row, nil)
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if nil != err {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); nil != err {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}
