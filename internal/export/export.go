// Package export writes a recipe list to a spreadsheet (.xlsx) or a flat
// CSV file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hammamikhairi/recipex/internal/domain"
)

// Sheet names in the workbook.
const (
	SheetRecipes     = "Recipes"
	SheetIngredients = "Ingredients"
)

// ErrNothingToExport is returned for an empty recipe list.
var ErrNothingToExport = errors.New("export: nothing to export")

// ErrUnsupportedFormat is returned when the path is neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("export: path must end with .xlsx or .csv")

var (
	recipeHeader     = []string{"id", "title", "ready_in_minutes", "servings", "dish_types", "cuisines", "saved"}
	ingredientHeader = []string{"recipe_id", "recipe_title", "name", "amount", "unit"}
)

// SavedFunc reports whether a recipe id is in the saved set.
type SavedFunc func(id int) bool

// DefaultName returns a timestamped file name for an export made at t.
func DefaultName(t time.Time) string {
	return "recipes-" + t.Format("20060102-150405") + ".xlsx"
}

// Write exports recipes to path, choosing the format from its extension.
func Write(path string, recipes []domain.Recipe, saved SavedFunc) error {
	if len(recipes) == 0 {
		return ErrNothingToExport
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: create dir: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteXLSX(path, recipes, saved)
	case ".csv":
		return WriteCSV(path, recipes, saved)
	default:
		return ErrUnsupportedFormat
	}
}

// WriteXLSX writes a workbook with one row per recipe on the Recipes sheet
// and one row per ingredient line on the Ingredients sheet.
func WriteXLSX(path string, recipes []domain.Recipe, saved SavedFunc) error {
	if len(recipes) == 0 {
		return ErrNothingToExport
	}
	saved = orNone(saved)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRecipes); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetIngredients); err != nil {
		return fmt.Errorf("export: add sheet: %w", err)
	}

	if err := streamRows(f, SheetRecipes, recipeHeader, recipeRows(recipes, saved)); err != nil {
		return err
	}
	if err := streamRows(f, SheetIngredients, ingredientHeader, ingredientRows(recipes)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// streamRows writes header then rows starting at A1.
func streamRows(f *excelize.File, sheet string, header []string, rows [][]any) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("export: stream %s: %w", sheet, err)
	}

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := sw.SetRow("A1", head); err != nil {
		return fmt.Errorf("export: %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i+2, err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush %s: %w", sheet, err)
	}
	return nil
}

// WriteCSV writes the Recipes table only; ingredient lines are folded into
// a single semicolon-separated column.
func WriteCSV(path string, recipes []domain.Recipe, saved SavedFunc) error {
	if len(recipes) == 0 {
		return ErrNothingToExport
	}
	saved = orNone(saved)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(append(slices.Clone(recipeHeader), "ingredients")); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}
	for _, r := range recipes {
		lines := make([]string, len(r.ExtendedIngredients))
		for i, ing := range r.ExtendedIngredients {
			lines[i] = ing.Line()
		}
		rec := []string{
			strconv.Itoa(r.ID),
			r.Title,
			strconv.Itoa(r.ReadyInMinutes),
			strconv.Itoa(r.Servings),
			strings.Join(r.DishTypes, ", "),
			strings.Join(r.Cuisines, ", "),
			yesNo(saved(r.ID)),
			strings.Join(lines, "; "),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("export: csv row %d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export: csv flush: %w", err)
	}
	return nil
}

func recipeRows(recipes []domain.Recipe, saved SavedFunc) [][]any {
	rows := make([][]any, len(recipes))
	for i, r := range recipes {
		rows[i] = []any{
			r.ID,
			r.Title,
			r.ReadyInMinutes,
			r.Servings,
			strings.Join(r.DishTypes, ", "),
			strings.Join(r.Cuisines, ", "),
			yesNo(saved(r.ID)),
		}
	}
	return rows
}

func ingredientRows(recipes []domain.Recipe) [][]any {
	var rows [][]any
	for _, r := range recipes {
		for _, ing := range r.ExtendedIngredients {
			rows = append(rows, []any{r.ID, r.Title, ing.Name, ing.Amount, ing.Unit})
		}
	}
	return rows
}

func orNone(saved SavedFunc) SavedFunc {
	if saved == nil {
		return func(int) bool { return false }
	}
	return saved
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
