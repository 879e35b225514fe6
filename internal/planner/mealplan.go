package planner

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// MealType labels a single entry. Values are not enforced; generated rows may
// carry anything and downstream consumers must tolerate it.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// DateLayout is the ISO day format the generator is asked to emit.
const DateLayout = "2006-01-02"

// MealEntry is a single generated meal row. Date stays raw text so that
// unvalidated model output round-trips through the store.
type MealEntry struct {
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	Item     string `json:"item"`
	Method   string `json:"method"`
	Prep     string `json:"prep"`
	Quantity string `json:"quantity"`
}

// Plan is the nested week -> day -> entries structure for one generation cycle.
type Plan map[string]map[string][]MealEntry

// Partition maps a calendar date to its (weekKey, dayKey) bucket.
// Weeks are day-of-month buckets of up to 7 days, not calendar weeks,
// so "week5" may hold only 1-3 days.
func Partition(t time.Time) (weekKey, dayKey string) {
	weekKey = fmt.Sprintf("week%d", (t.Day()-1)/7+1)
	dayKey = strings.ToLower(t.Weekday().String())
	return weekKey, dayKey
}

// AssemblePlan buckets entries into a Plan via Partition. Entries whose date
// does not parse are skipped with a warning; the rest are kept in input order.
func AssemblePlan(entries []MealEntry) Plan {
	plan := Plan{}
	for _, e := range entries {
		t, err := time.Parse(DateLayout, strings.TrimSpace(e.Date))
		if err != nil {
			log.Printf("Warning: skipping entry with unparseable date %q (%s)", e.Date, e.Item)
			continue
		}
		weekKey, dayKey := Partition(t)
		if plan[weekKey] == nil {
			plan[weekKey] = map[string][]MealEntry{}
		}
		plan[weekKey][dayKey] = append(plan[weekKey][dayKey], e)
	}
	return plan
}

// ForDate returns the entries planned for the given date, or an empty slice.
// Entries are matched on their full date inside the partition bucket, so rows
// from another month sharing the same week/day bucket never leak through.
func (p Plan) ForDate(t time.Time) []MealEntry {
	weekKey, dayKey := Partition(t)
	want := t.Format(DateLayout)

	var out []MealEntry
	for _, e := range p[weekKey][dayKey] {
		if strings.TrimSpace(e.Date) == want {
			out = append(out, e)
		}
	}
	return out
}

// PrepItems collects the non-empty prep fields of every entry, week by week,
// in stable week/day order.
func (p Plan) PrepItems() []string {
	return p.prepItems(func(string) bool { return true })
}

// PrepItemsForWeek collects non-empty prep fields for a single week bucket.
func (p Plan) PrepItemsForWeek(weekKey string) []string {
	return p.prepItems(func(wk string) bool { return wk == weekKey })
}

func (p Plan) prepItems(keep func(weekKey string) bool) []string {
	var items []string
	for _, weekKey := range weekKeys {
		if !keep(weekKey) {
			continue
		}
		for _, dayKey := range dayKeys {
			for _, e := range p[weekKey][dayKey] {
				if e.Prep != "" {
					items = append(items, e.Prep)
				}
			}
		}
	}
	return items
}

// Iteration order for the nested map structure.
var (
	weekKeys = []string{"week1", "week2", "week3", "week4", "week5"}
	dayKeys  = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)
