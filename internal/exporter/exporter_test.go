package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"veg-meal-planner/internal/planner"

	"github.com/xuri/excelize/v2"
)

type fakeStore struct {
	result   planner.Result
	received []planner.MealEntry
	calls    int
}

func (f *fakeStore) Load(ctx context.Context) planner.Plan {
	return planner.AssemblePlan(f.received)
}

func (f *fakeStore) ReplaceAll(ctx context.Context, entries []planner.MealEntry) planner.Result {
	f.calls++
	f.received = entries
	return f.result
}

var sampleEntries = []planner.MealEntry{
	{Date: "2024-03-01", MealType: "breakfast", Item: "Poha", Method: "Steam", Prep: "Soak poha", Quantity: "2 cups"},
	{Date: "2024-03-01", MealType: "lunch", Item: "Dal Tadka", Method: "Pressure cook", Quantity: "1 bowl"},
}

func TestExportSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	store := &fakeStore{result: planner.Result{Status: planner.StatusSuccess, Message: "saved 2 entries"}}

	e := NewExporter(store, path)
	result := e.Export(context.Background(), sampleEntries)

	if result.Status != planner.StatusSuccess {
		t.Fatalf("Expected success, got %+v", result)
	}
	if store.calls != 1 {
		t.Errorf("Expected 1 repository write, got %d", store.calls)
	}

	// The artifact must contain one fixed sheet with the fixed header order.
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open exported file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("MealPlan")
	if err != nil {
		t.Fatalf("Failed to read MealPlan sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "date,meal_type,item,method,prep,quantity" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}
	if rows[1][2] != "Poha" || rows[2][2] != "Dal Tadka" {
		t.Errorf("Unexpected data rows: %v", rows[1:])
	}
}

func TestExportRepositoryFailureIsWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	store := &fakeStore{result: planner.Result{Status: planner.StatusError, Message: "store unreachable"}}

	e := NewExporter(store, path)
	result := e.Export(context.Background(), sampleEntries)

	if result.Status != planner.StatusWarning {
		t.Fatalf("Expected warning, got %+v", result)
	}
	if !strings.Contains(result.Message, "store unreachable") {
		t.Errorf("Expected message to carry the repository error, got %q", result.Message)
	}

	// The local file must still have been produced.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected spreadsheet to exist despite repository failure: %v", err)
	}
}

func TestExportFileFailureIsError(t *testing.T) {
	// A directory path the exporter cannot write a file to.
	dir := t.TempDir()
	store := &fakeStore{result: planner.Result{Status: planner.StatusSuccess}}

	e := NewExporter(store, dir)
	result := e.Export(context.Background(), sampleEntries)

	if result.Status != planner.StatusError {
		t.Fatalf("Expected error, got %+v", result)
	}
	if store.calls != 0 {
		t.Errorf("Expected no repository write after file failure, got %d", store.calls)
	}
}
