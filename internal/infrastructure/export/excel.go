package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxSheetNameLen is the Excel limit for worksheet names
const maxSheetNameLen = 31

// ExcelRenderer renders documents as xlsx workbooks, one sheet per section.
type ExcelRenderer struct{}

// NewExcelRenderer creates a new ExcelRenderer
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// ContentType returns the MIME type for xlsx output
func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the file extension for xlsx output
func (r *ExcelRenderer) Extension() string {
	return "xlsx"
}

// Render writes the document as an xlsx workbook
func (r *ExcelRenderer) Render(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	for i, section := range doc.Sections {
		sheet := sheetName(section.Title, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet: %w", err)
			}
		}

		row := 1
		if err := f.SetCellValue(sheet, cell(1, row), section.Title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), cell(1, row), titleStyle); err != nil {
			return nil, err
		}
		row += 2

		for _, fact := range section.Facts {
			if err := f.SetCellValue(sheet, cell(1, row), fact.Label); err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell(2, row), fact.Value); err != nil {
				return nil, err
			}
			row++
		}
		if len(section.Facts) > 0 {
			row++
		}

		if section.Table != nil {
			for col, header := range section.Table.Headers {
				if err := f.SetCellValue(sheet, cell(col+1, row), header); err != nil {
					return nil, err
				}
			}
			if len(section.Table.Headers) > 0 {
				if err := f.SetCellStyle(sheet,
					cell(1, row), cell(len(section.Table.Headers), row), headerStyle); err != nil {
					return nil, err
				}
			}
			row++

			for _, tableRow := range section.Table.Rows {
				for col, value := range tableRow {
					if err := f.SetCellValue(sheet, cell(col+1, row), value); err != nil {
						return nil, err
					}
				}
				row++
			}

			if err := f.SetColWidth(sheet, "A", "H", 22); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName sanitizes a section title into a valid worksheet name
func sheetName(title string, index int) string {
	name := title
	for _, ch := range []string{"/", "\\", "?", "*", "[", "]", ":"} {
		name = strings.ReplaceAll(name, ch, " ")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Sheet%d", index+1)
	}
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}
	return name
}

// cell converts 1-based column and row numbers to an A1 reference
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
