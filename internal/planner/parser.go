package planner

import (
	"encoding/csv"
	"log"
	"strings"
)

// Columns recognized in generated CSV, in storage order.
var recognizedColumns = []string{"date", "meal_type", "item", "method", "prep", "quantity"}

// ParseEntries interprets raw generated text as CSV with the header
// date,meal_type,item,method,prep,quantity. A strict parse is attempted first;
// if the input is malformed as a whole, a lenient line-by-line parse keeps
// every well-formed line in order and drops the rest. Values are not validated.
func ParseEntries(raw string) []MealEntry {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	records, err := readStrict(raw)
	if err != nil {
		log.Printf("Warning: strict CSV parse failed (%v), falling back to lenient parse", err)
		records = readLenient(raw)
	}
	if len(records) == 0 {
		return nil
	}

	header, rows := records[0], records[1:]
	index := columnIndex(header)
	if _, ok := index["date"]; !ok {
		log.Printf("Warning: generated output has no recognizable header, discarding %d lines", len(records))
		return nil
	}

	var entries []MealEntry
	for _, row := range rows {
		entries = append(entries, MealEntry{
			Date:     cell(row, index, "date"),
			MealType: cell(row, index, "meal_type"),
			Item:     cell(row, index, "item"),
			Method:   cell(row, index, "method"),
			Prep:     cell(row, index, "prep"),
			Quantity: cell(row, index, "quantity"),
		})
	}
	return entries
}

func readStrict(raw string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// readLenient parses one line at a time, skipping lines that fail on their own
// or that disagree with the header's column count.
func readLenient(raw string) [][]string {
	var records [][]string
	want := -1
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.TrimLeadingSpace = true
		record, err := r.Read()
		if err != nil {
			log.Printf("Warning: dropping malformed line: %q", line)
			continue
		}
		if want == -1 {
			want = len(record) // header sets the expected width
		} else if len(record) != want {
			log.Printf("Warning: dropping line with %d columns (want %d): %q", len(record), want, line)
			continue
		}
		records = append(records, record)
	}
	return records
}

// columnIndex maps recognized column names to their position in the header,
// lower-casing and trimming header cells first.
func columnIndex(header []string) map[string]int {
	index := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, col := range recognizedColumns {
			if name == col {
				index[col] = i
			}
		}
	}
	return index
}

// cell returns the named column of row, or "" when the column is missing
// or the row is too short.
func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
