package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"dialogsynth/internal/types"
)

// WriteSheet writes a single-sheet workbook with a header row.
func WriteSheet(path, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// CallsSheet renders generated call scripts as reviewer rows.
func CallsSheet(calls []types.CallScript) ([]string, [][]any) {
	header := []string{"call_id", "topic", "resolved", "model", "instruct_lang", "examples", "turns"}
	rows := make([][]any, 0, len(calls))
	for _, c := range calls {
		turns := 0
		if conv, ok := c["conversation"].([]any); ok {
			turns = len(conv)
		}
		rows = append(rows, []any{
			c[types.KeyCallID], c[types.KeyTopic], c[types.KeyResolved], c[types.KeyModel],
			c[types.KeyInstructLang], c[types.KeyExamples], turns,
		})
	}
	return header, rows
}
