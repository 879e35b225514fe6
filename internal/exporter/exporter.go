// Package exporter writes a generated plan to its two destinations: the local
// spreadsheet artifact and the hosted repository.
package exporter

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"veg-meal-planner/internal/planner"

	"github.com/xuri/excelize/v2"
)

const sheetName = "MealPlan"

var headerRow = []string{"date", "meal_type", "item", "method", "prep", "quantity"}

// Exporter persists parsed entries to an xlsx file and to the plan store.
type Exporter struct {
	store planner.PlanStore
	path  string
}

// NewExporter creates a new Exporter writing to the given xlsx path.
func NewExporter(store planner.PlanStore, path string) *Exporter {
	return &Exporter{store: store, path: path}
}

// Export writes the entries to the spreadsheet file and then replaces the
// repository contents. Status "warning" means the local file was produced but
// the repository write failed; the message carries the repository error.
func (e *Exporter) Export(ctx context.Context, entries []planner.MealEntry) planner.Result {
	if err := e.writeSpreadsheet(entries); err != nil {
		log.Printf("Error writing spreadsheet: %v", err)
		return planner.Result{Status: planner.StatusError, Message: err.Error()}
	}

	result := e.store.ReplaceAll(ctx, entries)
	if result.Status != planner.StatusSuccess {
		return planner.Result{
			Status:  planner.StatusWarning,
			Message: fmt.Sprintf("spreadsheet saved to %s, but repository write failed: %s", e.path, result.Message),
		}
	}

	return planner.Result{
		Status:  planner.StatusSuccess,
		Message: fmt.Sprintf("saved %d entries to %s and the repository", len(entries), e.path),
	}
}

func (e *Exporter) writeSpreadsheet(entries []planner.MealEntry) error {
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory %s: %w", dir, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, entry := range entries {
		row := []string{entry.Date, entry.MealType, entry.Item, entry.Method, entry.Prep, entry.Quantity}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save spreadsheet %s: %w", e.path, err)
	}
	return nil
}
