package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"veg-meal-planner/internal/planner"
)

type fakePlanStore struct {
	plan planner.Plan
}

func (f *fakePlanStore) Load(ctx context.Context) planner.Plan { return f.plan }

func (f *fakePlanStore) ReplaceAll(ctx context.Context, entries []planner.MealEntry) planner.Result {
	return planner.Result{Status: planner.StatusSuccess}
}

type fakeSender struct {
	sent   map[string]string
	failOn string
}

func (f *fakeSender) Send(to, body string) error {
	if to == f.failOn {
		return fmt.Errorf("delivery failed")
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to] = body
	return nil
}

func testPlan() planner.Plan {
	return planner.AssemblePlan([]planner.MealEntry{
		{Date: "2024-03-10", MealType: "breakfast", Item: "Poha", Method: "Steam with peanuts", Prep: "Soak poha"},
		{Date: "2024-03-10", MealType: "dinner", Item: "Khichdi", Method: "One-pot"},
		{Date: "2024-03-11", MealType: "breakfast", Item: "Dosa", Method: "Griddle", Prep: "Ferment batter"},
		{Date: "2024-03-20", MealType: "dinner", Item: "Rajma", Method: "Pressure cook", Prep: "Soak rajma"},
	})
}

func fixedDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(planner.DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %s: %v", s, err)
	}
	return d
}

func TestBuildDailyMessage(t *testing.T) {
	body, ok := BuildDailyMessage(testPlan(), fixedDate(t, "2024-03-10"))
	if !ok {
		t.Fatal("Expected a daily message, got none")
	}
	if !strings.Contains(body, "*Today's Plan* (10 March 2024)") {
		t.Errorf("Expected dated title, got:\n%s", body)
	}
	if !strings.Contains(body, "🍽 Breakfast: Poha") || !strings.Contains(body, "🍽 Dinner: Khichdi") {
		t.Errorf("Expected both meals, got:\n%s", body)
	}
	if !strings.Contains(body, "🛠 Prep: Soak poha") {
		t.Errorf("Expected today's prep line, got:\n%s", body)
	}
	if !strings.Contains(body, "*Evening Prep for Tomorrow*: Ferment batter") {
		t.Errorf("Expected tomorrow's prep, got:\n%s", body)
	}
}

func TestBuildDailyMessageMultibyteMealType(t *testing.T) {
	plan := planner.AssemblePlan([]planner.MealEntry{
		{Date: "2024-03-10", MealType: "śniadanie", Item: "Poha", Method: "Steam"},
	})

	body, ok := BuildDailyMessage(plan, fixedDate(t, "2024-03-10"))
	if !ok {
		t.Fatal("Expected a daily message, got none")
	}
	if !utf8.ValidString(body) {
		t.Fatalf("Expected valid UTF-8 output, got %q", body)
	}
	if !strings.Contains(body, "🍽 Śniadanie: Poha") {
		t.Errorf("Expected rune-wise capitalized meal type, got:\n%s", body)
	}
}

func TestBuildDailyMessageNoPlan(t *testing.T) {
	if _, ok := BuildDailyMessage(testPlan(), fixedDate(t, "2024-03-25")); ok {
		t.Error("Expected no message for an unplanned day")
	}
}

func TestBuildWeeklyMessage(t *testing.T) {
	// 2024-03-10 falls in week2; only week2 preps must appear.
	body, ok := BuildWeeklyMessage(testPlan(), fixedDate(t, "2024-03-10"))
	if !ok {
		t.Fatal("Expected a weekly message, got none")
	}
	if !strings.Contains(body, "*Weekly Grocery List*") {
		t.Errorf("Expected weekly title, got:\n%s", body)
	}
	if !strings.Contains(body, "- Soak poha") || !strings.Contains(body, "- Ferment batter") {
		t.Errorf("Expected week2 preps, got:\n%s", body)
	}
	if strings.Contains(body, "Soak rajma") {
		t.Errorf("Expected week3 prep excluded, got:\n%s", body)
	}
}

func TestBuildMonthlyMessage(t *testing.T) {
	body, ok := BuildMonthlyMessage(testPlan())
	if !ok {
		t.Fatal("Expected a monthly message, got none")
	}
	for _, want := range []string{"*Monthly Grocery List*", "- Soak poha", "- Ferment batter", "- Soak rajma"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in monthly message, got:\n%s", want, body)
		}
	}
}

func TestBuildMonthlyMessageEmptyPlan(t *testing.T) {
	if _, ok := BuildMonthlyMessage(planner.Plan{}); ok {
		t.Error("Expected no message for an empty plan")
	}
}

func TestSendDailyFansOutToAllRecipients(t *testing.T) {
	store := &fakePlanStore{plan: testPlan()}
	sender := &fakeSender{}

	d := NewDispatcher(store, sender, []string{"+111", "+222"})
	d.now = func() time.Time { return fixedDate(t, "2024-03-10") }

	d.SendDaily(context.Background())

	if len(sender.sent) != 2 {
		t.Fatalf("Expected 2 deliveries, got %d", len(sender.sent))
	}
	if sender.sent["+111"] != sender.sent["+222"] {
		t.Error("Expected identical body for every recipient")
	}
}

func TestSendDailyFailureDoesNotBlockOthers(t *testing.T) {
	store := &fakePlanStore{plan: testPlan()}
	sender := &fakeSender{failOn: "+111"}

	d := NewDispatcher(store, sender, []string{"+111", "+222"})
	d.now = func() time.Time { return fixedDate(t, "2024-03-10") }

	d.SendDaily(context.Background())

	if _, ok := sender.sent["+222"]; !ok {
		t.Error("Expected delivery to continue past a failing recipient")
	}
}

func TestSendWeeklyWithNothingPlannedSendsNothing(t *testing.T) {
	store := &fakePlanStore{plan: planner.Plan{}}
	sender := &fakeSender{}

	d := NewDispatcher(store, sender, []string{"+111"})
	d.SendWeekly(context.Background())

	if len(sender.sent) != 0 {
		t.Errorf("Expected no deliveries, got %v", sender.sent)
	}
}
